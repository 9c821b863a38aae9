package model

// User represents a staff account
type User struct {
	Base
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         Role   `json:"role" db:"role"`
	Department   string `json:"department" db:"department"`
	Phone        string `json:"phone" db:"phone"`
}

// CreateUserRequest represents staff account creation parameters
type CreateUserRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
	Role            string `json:"role" binding:"required,staffrole"`
	Department      string `json:"department"`
	Phone           string `json:"phone" binding:"omitempty,phone"`
}

// UpdateUserRequest represents staff account update parameters
type UpdateUserRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Password        *string `json:"password" binding:"omitempty,min=8"`
	ConfirmPassword *string `json:"confirm_password"`
	Role            *string `json:"role" binding:"omitempty,staffrole"`
	Department      *string `json:"department"`
	Phone           *string `json:"phone" binding:"omitempty,phone"`
}

// UserFilter represents staff search parameters
type UserFilter struct {
	SearchTerm string `json:"search_term" form:"search"`
	Role       string `json:"role" form:"role"`
	Pagination
}
