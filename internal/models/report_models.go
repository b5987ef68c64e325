package models

const (
	TransactionFixedTrip    = "FIXED_TRIP"
	TransactionFloatingTrip = "FLOATING_TRIP"
	TransactionPayment      = "PAYMENT"
)

type LedgerRequest struct {
	DriverID int    `query:"driver_id" json:"driver_id" validate:"required,gt=0"`
	FromDate string `query:"from_date" json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate   string `query:"to_date" json:"to_date" validate:"required,datetime=2006-01-02"`
}

type EmailLedgerRequest struct {
	LedgerRequest
	To string `json:"to" validate:"required,email"`
}

// LedgerEntry is one credit (trip allowance) or debit (payment) line.
type LedgerEntry struct {
	TransDate       string  `json:"trans_date"`
	BillNo          string  `json:"bill_no"`
	TransactionType string  `json:"transaction_type"`
	Description     string  `json:"description"`
	CrAmount        float64 `json:"cr_amount"`
	DrAmount        float64 `json:"dr_amount"`
	RunningBalance  float64 `json:"running_balance"`
}

type LedgerSummary struct {
	OpeningBalance float64 `json:"opening_balance"`
	TotalCredit    float64 `json:"total_credit"`
	TotalDebit     float64 `json:"total_debit"`
	Balance        float64 `json:"balance"`
}

type DriverLedger struct {
	Driver       *Driver        `json:"driver"`
	FromDate     string         `json:"from_date"`
	ToDate       string         `json:"to_date"`
	Summary      LedgerSummary  `json:"summary"`
	Transactions []*LedgerEntry `json:"transactions"`
}
