package api

// Item is a catalog entry as returned by the items endpoints.
type Item struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category,omitempty"`
	DealerName    string  `json:"dealer_name,omitempty"`
	CostPrice     float64 `json:"cost_price,omitempty"`
	MarginPercent float64 `json:"margin_percent,omitempty"`
	SellingPrice  float64 `json:"selling_price"`
	Quantity      int     `json:"quantity"`
}

// ItemUpdate is the PUT /items/{id} payload.
type ItemUpdate struct {
	Name          string  `json:"name"`
	CostPrice     float64 `json:"cost_price"`
	MarginPercent float64 `json:"margin_percent"`
	SellingPrice  float64 `json:"selling_price"`
	Quantity      int     `json:"quantity"`
}

// SaleLine is one line of a sale submission. Price is only sent for
// custom-priced entries; the backend otherwise prices from the catalog.
type SaleLine struct {
	ItemID          int64   `json:"item_id"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price,omitempty"`
	DiscountPercent float64 `json:"discount_percent"`
}

// SaleRequest is the POST /sales and POST /sales/preview payload.
type SaleRequest struct {
	SaleType        string     `json:"sale_type,omitempty"`
	ManualDate      string     `json:"manual_date,omitempty"`
	CustomerName    *string    `json:"customer_name"`
	CustomerPhone   *string    `json:"customer_phone"`
	CustomerAddress *string    `json:"customer_address,omitempty"`
	PaymentMode     string     `json:"payment_mode"`
	AmountPaid      float64    `json:"amount_paid"`
	Items           []SaleLine `json:"items"`
}

// PreviewLine is one priced line of a sale preview.
type PreviewLine struct {
	ItemName        string  `json:"item_name"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	DiscountPercent float64 `json:"discount_percent"`
	FinalPrice      float64 `json:"final_price"`
}

// SalePreview carries the backend's authoritative totals for a
// candidate sale without persisting anything.
type SalePreview struct {
	Items         []PreviewLine `json:"items"`
	TotalAmount   float64       `json:"total_amount"`
	TotalDiscount float64       `json:"total_discount"`
	FinalAmount   float64       `json:"final_amount"`
}

// SaleReceipt is returned by a confirmed sale.
type SaleReceipt struct {
	Message     string  `json:"message"`
	BillID      int64   `json:"bill_id"`
	FinalAmount float64 `json:"final_amount"`
}

// SaleDetailItem is one persisted line of a finished sale.
type SaleDetailItem struct {
	ItemID          int64   `json:"item_id"`
	ItemName        string  `json:"item_name,omitempty"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	DiscountPercent float64 `json:"discount_percent"`
	FinalPrice      float64 `json:"final_price"`
}

// SaleDetail is the invoice view of a persisted sale.
type SaleDetail struct {
	BillID        int64            `json:"bill_id"`
	Date          string           `json:"date"`
	CustomerName  string           `json:"customer_name,omitempty"`
	CustomerPhone string           `json:"customer_phone,omitempty"`
	TotalAmount   float64          `json:"total_amount"`
	TotalDiscount float64          `json:"total_discount"`
	FinalAmount   float64          `json:"final_amount"`
	AmountPaid    float64          `json:"amount_paid,omitempty"`
	DueAmount     float64          `json:"due_amount,omitempty"`
	Items         []SaleDetailItem `json:"items"`
}

// SaleSummary is one row of the sales history feed.
type SaleSummary struct {
	ID            int64   `json:"id"`
	Date          string  `json:"created_at"`
	SaleType      string  `json:"sale_type"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	FinalAmount   float64 `json:"rounded_final_amount"`
	PaymentMode   string  `json:"payment_mode"`
}

// TodayReport holds the dashboard counters for the current day.
type TodayReport struct {
	TotalSales     float64 `json:"total_sales"`
	BillCount      int     `json:"bill_count"`
	CustomersCount int     `json:"customers_count"`
	TotalCredit    float64 `json:"total_credit"`
}

// DayTotal is one bar of the last-7-days trend.
type DayTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// PurchaseLine is one line of a purchase batch.
type PurchaseLine struct {
	ItemID        int64   `json:"item_id"`
	ItemName      string  `json:"item_name,omitempty"`
	Quantity      int     `json:"quantity"`
	CostPrice     float64 `json:"cost_price"`
	MarginPercent float64 `json:"margin_percent"`
}

/// PurchaseBatch is the POST /purchases/ payload: one supplier delivery
// covering several items.
type PurchaseBatch struct {
	DealerName    string         `json:"dealer_name"`
	SupplierPhone string         `json:"supplier_phone,omitempty"`
	Items         []PurchaseLine `json:"items"`
}

// PurchaseSummary is one row of the purchase history list.
type PurchaseSummary struct {
	ID         int64   `json:"id"`
	DealerName string  `json:"dealer_name"`
	Date       string  `json:"created_at"`
	ItemCount  int     `json:"item_count"`
	TotalCost  float64 `json:"total_cost"`
}

// PurchaseDetail is a single purchase batch with its lines.
type PurchaseDetail struct {
	ID         int64          `json:"id"`
	DealerName string         `json:"dealer_name"`
	Date       string         `json:"created_at"`
	Items      []PurchaseLine `json:"items"`
}

// Supplier is a dealer record matched by phone search.
type Supplier struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	AltPhone string `json:"alt_phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Customer is a customer record matched by name/phone search.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// CustomerSummary is one row of the customers overview.
type CustomerSummary struct {
	CustomerID       int64   `json:"customer_id"`
	Name             string  `json:"name"`
	Phone            string  `json:"phone"`
	LastPurchaseDate string  `json:"last_purchase_date"`
	TotalPurchase    float64 `json:"total_purchase"`
	TotalPaid        float64 `json:"total_paid"`
	TotalCredit      float64 `json:"total_credit"`
}

// CustomerSale is one sale in a customer's history.
type CustomerSale struct {
	ID          int64   `json:"id"`
	Date        string  `json:"created_at"`
	FinalAmount float64 `json:"rounded_final_amount"`
	AmountPaid  float64 `json:"amount_paid"`
	DueAmount   float64 `json:"due_amount"`
	PaymentMode string  `json:"payment_mode"`
}

// CustomerAggregates are the lifetime totals inside the combined
// customer details payload.
type CustomerAggregates struct {
	TotalPurchase float64 `json:"total_purchase"`
	TotalPaid     float64 `json:"total_paid"`
	TotalCredit   float64 `json:"total_credit"`
}

// CustomerLedgerSale is one sale row of the combined details payload.
type CustomerLedgerSale struct {
	SaleID      int64   `json:"sale_id"`
	Date        string  `json:"date"`
	TotalAmount float64 `json:"total_amount"`
	Paid        float64 `json:"paid"`
	Credit      float64 `json:"credit"`
	PaymentMode string  `json:"payment_mode"`
}

// CustomerDetail is the combined drill-down payload: the customer
// record, its aggregates, and its sale ledger in one response.
type CustomerDetail struct {
	Customer Customer             `json:"customer"`
	Summary  CustomerAggregates   `json:"summary"`
	Sales    []CustomerLedgerSale `json:"sales"`
}

// CreditEntry is one unpaid sale in the credit ledger.
type CreditEntry struct {
	SaleID        int64   `json:"sale_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	Total         float64 `json:"total"`
	Paid          float64 `json:"paid"`
	Due           float64 `json:"due"`
	Date          string  `json:"date"`
}
