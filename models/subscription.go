package models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "inactive"
)

// Subscription holds at most one row per user. The unique index on UserID
// backs the upsert in the activation flow.
type Subscription struct {
	ID            string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID        string             `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	PlanID        uint               `json:"planId" gorm:"not null"`
	Status        SubscriptionStatus `json:"status" gorm:"type:varchar(20);default:'inactive'"`
	PeriodStart   time.Time          `json:"periodStart"`
	PeriodEnd     time.Time          `json:"periodEnd"`
	PaymentMethod string             `json:"paymentMethod" gorm:"type:varchar(20)"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}
