package models

import "time"

// ListFilter carries the common list query parameters.
type ListFilter struct {
	Page   int
	Limit  int
	Search string
	Status string
}

// Offset returns the row offset for the current page.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Driver struct {
	ID          int       `json:"driver_id"`
	Name        string    `json:"driver_name"`
	Phone       string    `json:"phone"`
	LicenseNo   string    `json:"license_no"`
	JoiningDate string    `json:"joining_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DriverRequest struct {
	Name        string `json:"driver_name" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"required,phone10"`
	LicenseNo   string `json:"license_no" validate:"omitempty,max=50"`
	JoiningDate string `json:"joining_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type Vehicle struct {
	ID          int       `json:"vehicle_id"`
	Name        string    `json:"name"`
	VehicleNo   string    `json:"vehicle_no"`
	VehicleType string    `json:"vehicle_type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type VehicleRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	VehicleNo   string `json:"vehicle_no" validate:"required,max=30"`
	VehicleType string `json:"vehicle_type" validate:"required,max=30"`
	Status      string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type VehicleTypeRequest struct {
	Name string `json:"name" validate:"required,max=30"`
}

// Route is an entry in the trip master: a predefined run with a flat allowance.
type Route struct {
	ID                 int       `json:"route_id"`
	Name               string    `json:"route_name"`
	FixedDistance      float64   `json:"fixed_distance"`
	FixedAllowance     float64   `json:"fixed_allowance"`
	FixedFoodAllowance float64   `json:"fixed_food_allowance"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type RouteRequest struct {
	Name               string  `json:"route_name" validate:"required,max=100"`
	FixedDistance      float64 `json:"fixed_distance" validate:"gte=0"`
	FixedAllowance     float64 `json:"fixed_allowance" validate:"gte=0"`
	FixedFoodAllowance float64 `json:"fixed_food_allowance" validate:"gte=0"`
	Status             string  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type CompanySettings struct {
	CompanyName string     `json:"company_name"`
	Address     string     `json:"address"`
	Phone       string     `json:"phone"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type CompanySettingsRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=150"`
	Address     string `json:"address" validate:"max=500"`
	Phone       string `json:"phone" validate:"omitempty,e164"`
}

// DashboardStats are the counters shown on the landing page.
type DashboardStats struct {
	Vehicles          int       `json:"vehicles"`
	Drivers           int       `json:"drivers"`
	Routes            int       `json:"routes"`
	FixedTrips        int       `json:"fixed_trips"`
	FloatingTrips     int       `json:"floating_trips"`
	Payments          int       `json:"payments"`
	PaymentsThisMonth float64   `json:"payments_this_month"`
	GeneratedAt       time.Time `json:"generated_at"`
}
