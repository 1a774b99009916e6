package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentPending   PaymentStatus = "pending"
)

// Payment is the ledger of payment attempts, one row per gateway intent.
// Amount is stored in the gateway's minor unit (centavos).
type Payment struct {
	ID              string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID          string        `json:"userId" gorm:"type:uuid;not null;index"`
	PlanID          uint          `json:"planId" gorm:"not null"`
	Amount          int64         `json:"amount"`
	Currency        string        `json:"currency" gorm:"type:varchar(3)"`
	GatewayIntentID string        `json:"gatewayIntentId" gorm:"uniqueIndex;not null"`
	Status          PaymentStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Method          string        `json:"method" gorm:"type:varchar(20)"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
