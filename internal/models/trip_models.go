package models

import "time"

type FixedTrip struct {
	ID             int       `json:"fixed_trip_id"`
	DocumentNo     string    `json:"document_no"`
	TripDate       string    `json:"trip_date"`
	DriverID       int       `json:"driver_id"`
	DriverName     string    `json:"driver_name,omitempty"`
	VehicleID      int       `json:"vehicle_id"`
	VehicleName    string    `json:"vehicle_name,omitempty"`
	RouteID        int       `json:"route_id"`
	RouteName      string    `json:"route_name"`
	Distance       float64   `json:"distance"`
	FixedAllowance float64   `json:"fixed_allowance"`
	FoodAllowance  float64   `json:"food_allowance"`
	TotalAmount    float64   `json:"total_amount"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FixedTripRequest creates or updates a fixed trip. Nil amounts are filled
// in from the route master.
type FixedTripRequest struct {
	TripDate       string   `json:"trip_date" validate:"required,datetime=2006-01-02"`
	DriverID       int      `json:"driver_id" validate:"required,gt=0"`
	VehicleID      int      `json:"vehicle_id" validate:"required,gt=0"`
	RouteID        int      `json:"route_id" validate:"required,gt=0"`
	Distance       *float64 `json:"distance,omitempty" validate:"omitempty,gte=0"`
	FixedAllowance *float64 `json:"fixed_allowance,omitempty" validate:"omitempty,gte=0"`
	FoodAllowance  *float64 `json:"food_allowance,omitempty" validate:"omitempty,gte=0"`
	Status         string   `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type FloatingTrip struct {
	ID               int       `json:"floating_trip_id"`
	DocumentNo       string    `json:"document_no"`
	TripDate         string    `json:"trip_date"`
	DriverID         int       `json:"driver_id"`
	DriverName       string    `json:"driver_name,omitempty"`
	VehicleID        int       `json:"vehicle_id"`
	VehicleName      string    `json:"vehicle_name,omitempty"`
	AreaName         string    `json:"area_name"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	StartKm          float64   `json:"start_km"`
	EndKm            float64   `json:"end_km"`
	FoodAllowance    float64   `json:"food_allowance"`
	TotalDistance    float64   `json:"total_distance"`
	MileageAllowance float64   `json:"mileage_allowance"`
	TotalTime        string    `json:"total_time"`
	TimeBonus        float64   `json:"time_bonus"`
	TotalAmount      float64   `json:"total_amount"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FloatingTripRequest carries the raw form fields. Odometer readings and the
// food allowance stay strings so blanks reach the calculator untouched.
type FloatingTripRequest struct {
	TripDate      string `json:"trip_date" validate:"required,datetime=2006-01-02"`
	DriverID      int    `json:"driver_id" validate:"required,gt=0"`
	VehicleID     int    `json:"vehicle_id" validate:"required,gt=0"`
	AreaName      string `json:"area_name" validate:"required,max=100"`
	StartTime     string `json:"start_time" validate:"required,hhmm"`
	EndTime       string `json:"end_time" validate:"required,hhmm"`
	StartKm       string `json:"start_km" validate:"omitempty,numeric,nonneg"`
	EndKm         string `json:"end_km" validate:"omitempty,numeric,nonneg"`
	FoodAllowance string `json:"food_allowance" validate:"omitempty,numeric,nonneg"`
}

// TripDateRange bounds exports and reports. Empty bounds are open.
type TripDateRange struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}
