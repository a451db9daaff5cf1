package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleMerchant = "merchant"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrMerchantExists = errors.New("merchant already exists")
var ErrMerchantNotFound = errors.New("merchant not found")

// Merchant is an API account. A merchant ships under its own carrier customer
// number and, when it has one, its contract.
type Merchant struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Username       string    `json:"username" bson:"username"`
	Email          string    `json:"email,omitempty" bson:"email,omitempty"`
	PasswordHash   string    `json:"-" bson:"password_hash"`
	Role           string    `json:"role" bson:"role"`
	CustomerNumber string    `json:"customer_number,omitempty" bson:"customer_number,omitempty"`
	ContractID     string    `json:"contract_id,omitempty" bson:"contract_id,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}
