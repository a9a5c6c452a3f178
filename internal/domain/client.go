package domain

import "time"

type Client struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedOn time.Time `json:"created_on"`
}

type StorageLocation struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
}

type StaffRole string

const (
	StaffRoleAdmin    StaffRole = "admin"
	StaffRoleOperator StaffRole = "operator"
)

type Staff struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         StaffRole `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedOn    time.Time `json:"created_on"`
}

type Notification struct {
	ID         int32             `json:"id"`
	StaffID    int32             `json:"staff_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  time.Time         `json:"created_on"`
}
