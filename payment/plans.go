package payment

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"savoryflavors-backend/models"

	"gorm.io/gorm"
)

// symbolic plan codes the checkout form sends in place of a numeric id
var planCodeAliases = map[string]struct {
	Name  string
	Cycle models.BillingCycle
}{
	"premium_monthly": {Name: "Premium", Cycle: models.BillingMonthly},
	"premium_yearly":  {Name: "Premium", Cycle: models.BillingYearly},
	"premium_annual":  {Name: "Premium", Cycle: models.BillingYearly},
	"basic":           {Name: "Basic", Cycle: models.BillingMonthly},
}

type PlanResolver struct {
	DB *gorm.DB
}

func NewPlanResolver(db *gorm.DB) *PlanResolver {
	return &PlanResolver{DB: db}
}

// Resolve maps a numeric or symbolic plan identifier to a plan row. A
// numeric id that exists always wins; symbolic codes carry their own
// billing cycle, and anything else is treated as a plan name paired with
// the submitted cycle.
func (r *PlanResolver) Resolve(ctx context.Context, planID string, billingCycle string) (*models.Plan, error) {
	planID = strings.TrimSpace(planID)

	if id, err := strconv.Atoi(planID); err == nil {
		var plan models.Plan
		err := r.DB.WithContext(ctx).First(&plan, "id = ?", id).Error
		if err == nil {
			return &plan, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &PlanLookupError{Err: err}
		}
	}

	if alias, ok := planCodeAliases[strings.ToLower(planID)]; ok {
		return r.byNameAndCycle(ctx, planID, alias.Name, alias.Cycle)
	}

	cycle := models.BillingCycle(NormalizeBillingCycle(billingCycle))
	return r.byNameAndCycle(ctx, planID, planID, cycle)
}

func (r *PlanResolver) byNameAndCycle(ctx context.Context, planID, name string, cycle models.BillingCycle) (*models.Plan, error) {
	var plan models.Plan
	err := r.DB.WithContext(ctx).
		First(&plan, "LOWER(name) = LOWER(?) AND billing_cycle = ?", name, cycle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &PlanNotFoundError{PlanID: planID}
	}
	if err != nil {
		return nil, &PlanLookupError{Err: err}
	}
	return &plan, nil
}
