package api

import "context"

// TodayReport fetches the dashboard counters for the current day.
func (c *Client) TodayReport(ctx context.Context) (*TodayReport, error) {
	var report TodayReport
	if err := c.get(ctx, "/reports/dashboard/today", &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// WeekReport fetches per-day sale totals for the last seven days.
func (c *Client) WeekReport(ctx context.Context) ([]DayTotal, error) {
	var days []DayTotal
	err := c.get(ctx, "/reports/dashboard/last-7-days", &days)
	return days, err
}
