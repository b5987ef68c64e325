package models

import "time"

const (
	PaymentModeCash = "CASH"
	PaymentModeBank = "BANK"
)

type Payment struct {
	ID             int       `json:"payment_id"`
	DocumentNo     string    `json:"document_no"`
	PaymentDate    string    `json:"payment_date"`
	DriverID       int       `json:"driver_id"`
	DriverName     string    `json:"driver_name,omitempty"`
	Amount         float64   `json:"amount"`
	PaymentMode    string    `json:"payment_mode"`
	CurrentBalance float64   `json:"current_balance"`
	Remarks        string    `json:"remarks"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PaymentRequest struct {
	PaymentDate string  `json:"payment_date" validate:"required,datetime=2006-01-02"`
	DriverID    int     `json:"driver_id" validate:"required,gt=0"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaymentMode string  `json:"payment_mode" validate:"required,oneof=CASH BANK"`
	Remarks     string  `json:"remarks" validate:"max=255"`
}

type DriverBalance struct {
	DriverID int     `json:"driver_id"`
	Credit   float64 `json:"total_credit"`
	Debit    float64 `json:"total_debit"`
	Balance  float64 `json:"balance"`
}
