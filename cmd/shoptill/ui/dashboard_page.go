package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"shoptill/internal/api"
	"shoptill/internal/billing"
)

// barWidth is the widest a trend bar can grow.
const barWidth = 32

// DashboardPage shows today's counters and a last-7-days sales trend.
type DashboardPage struct {
	deps   *Deps
	styles Styles

	today   *api.TodayReport
	week    []api.DayTotal
	loading bool
	err     error

	width  int
	height int
}

// NewDashboardPage creates the dashboard.
func NewDashboardPage(deps *Deps) DashboardPage {
	return DashboardPage{deps: deps, styles: deps.Styles}
}

// Init kicks off the feed fetch. Both feeds load in parallel and the
// page renders once both have landed.
func (p DashboardPage) Init() tea.Cmd {
	client := p.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var today *api.TodayReport
		var week []api.DayTotal
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			today, err = client.TodayReport(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			week, err = client.WeekReport(gctx)
			return err
		})
		err := g.Wait()
		return DashboardMsg{Today: today, Week: week, Err: err}
	}
}

// SetSize updates the page dimensions.
func (p *DashboardPage) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// Update handles messages.
func (p DashboardPage) Update(msg tea.Msg) (DashboardPage, tea.Cmd) {
	switch msg := msg.(type) {
	case DashboardMsg:
		p.loading = false
		p.err = msg.Err
		if msg.Err == nil {
			p.today = msg.Today
			p.week = msg.Week
		}
		return p, nil
	case tea.KeyMsg:
		if msg.String() == "r" {
			p.loading = true
			p.err = nil
			return p, p.Init()
		}
	}
	return p, nil
}

// View renders the page.
func (p DashboardPage) View() string {
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("Dashboard"))
	sb.WriteString("\n")

	if p.loading {
		sb.WriteString(p.styles.Muted.Render("loading..."))
		return sb.String()
	}
	if p.err != nil {
		sb.WriteString(p.styles.Error.Render("failed to load dashboard: " + p.err.Error()))
		sb.WriteString("\n" + p.styles.Muted.Render("press r to retry"))
		return sb.String()
	}
	if p.today == nil {
		sb.WriteString(p.styles.Muted.Render("loading..."))
		return sb.String()
	}

	cards := []string{
		p.card("Today's Sales", billing.Money(p.today.TotalSales)),
		p.card("Bills", fmt.Sprintf("%d", p.today.BillCount)),
		p.card("Customers", fmt.Sprintf("%d", p.today.CustomersCount)),
		p.card("Credit Given", billing.Money(p.today.TotalCredit)),
	}
	sb.WriteString(strings.Join(cards, " "))
	sb.WriteString("\n\n")

	sb.WriteString(p.styles.Subtitle.Render("Last 7 Days"))
	sb.WriteString("\n")
	sb.WriteString(p.trend())

	sb.WriteString("\n\n")
	sb.WriteString(p.styles.Muted.Render("r refresh"))
	return sb.String()
}

func (p DashboardPage) card(title, value string) string {
	body := p.styles.CardTitle.Render(title) + "\n" + p.styles.Bold.Render(value)
	return p.styles.Card.Render(body)
}

// trend renders the week as horizontal bars scaled to the busiest day.
func (p DashboardPage) trend() string {
	if len(p.week) == 0 {
		return p.styles.Muted.Render("  no sales recorded this week")
	}
	var max float64
	for _, d := range p.week {
		if d.Total > max {
			max = d.Total
		}
	}
	var sb strings.Builder
	for i, d := range p.week {
		width := 0
		if max > 0 {
			width = int(d.Total / max * barWidth)
		}
		if d.Total > 0 && width == 0 {
			width = 1
		}
		bar := strings.Repeat("█", width)
		sb.WriteString(fmt.Sprintf("%s %s %s",
			p.styles.Muted.Render(fmt.Sprintf("%10s", shortDay(d.Date))),
			p.styles.Info.Render(bar),
			p.styles.Body.Render(billing.Money(d.Total))))
		if i < len(p.week)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// shortDay turns an ISO date into a weekday label, falling back to the
// raw string for anything unparsable.
func shortDay(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Mon 02")
}
