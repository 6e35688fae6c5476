package models

import "time"

// Employee represents a workforce member stored in the employees table.
type Employee struct {
	ID         string     `db:"id" json:"id"`
	Email      string     `db:"email" json:"email"`
	FullName   string     `db:"full_name" json:"full_name"`
	Title      *string    `db:"title" json:"title,omitempty"`
	Department *string    `db:"department" json:"department,omitempty"`
	Active     bool       `db:"active" json:"active"`
	HiredAt    *time.Time `db:"hired_at" json:"hired_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// EmployeeFilter captures filtering criteria for listing employees.
type EmployeeFilter struct {
	Search     string
	Department string
	Active     *bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
