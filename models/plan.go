package models

import (
	"time"
)

type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// Plan is the subscription catalog. Rows are seeded outside this service
// and are read-only to the payment flow.
type Plan struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name" gorm:"not null"`
	Slug         string       `json:"slug" gorm:"uniqueIndex;not null"`
	BillingCycle BillingCycle `json:"billingCycle" gorm:"type:varchar(10);not null"`
	Price        float64      `json:"price"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
