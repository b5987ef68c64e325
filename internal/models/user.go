package models

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"

	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// User is a back-office account.
type User struct {
	ID           string    `json:"user_id" db:"id"` // UUID string from DB
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Status      string `json:"status"`
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	User        *User  `json:"user"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=4,max=72"`
	Role     string `json:"role" validate:"required,oneof=ADMIN USER"`
	Status   string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// UpdateUserRequest leaves the password unchanged when it is empty.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"omitempty,min=4,max=72"`
	Role     string `json:"role" validate:"required,oneof=ADMIN USER"`
	Status   string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}
