package payment

import (
	"context"
	"errors"
	"time"

	"savoryflavors-backend/models"
	"savoryflavors-backend/utils"

	"gorm.io/gorm"
)

const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionUnchanged = "unchanged"
)

// ActivationInput is the contract shared by the synchronous card path and
// the external redirect-completion callback.
type ActivationInput struct {
	UserID          string
	PlanID          uint
	BillingCycle    models.BillingCycle
	AmountMinor     int64
	Currency        string
	GatewayIntentID string
	PaymentMethod   string
}

type RecordResult struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

type ActivationResult struct {
	Subscription RecordResult `json:"subscription"`
	Payment      RecordResult `json:"payment"`
}

// Activator records a confirmed charge. Both writes are upserts on natural
// keys (user id, gateway intent id) inside one transaction, so replays and
// racing callbacks converge on the same rows.
type Activator struct {
	DB *gorm.DB
}

func NewActivator(db *gorm.DB) *Activator {
	return &Activator{DB: db}
}

func (a *Activator) Activate(ctx context.Context, in ActivationInput) (*ActivationResult, error) {
	periodStart := time.Now()
	var periodEnd time.Time
	if in.BillingCycle == models.BillingYearly {
		periodEnd = periodStart.AddDate(1, 0, 0)
	} else {
		periodEnd = periodStart.AddDate(0, 1, 0)
	}

	result, err := a.activate(ctx, in, periodStart, periodEnd)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race on a unique index to a concurrent activation. The
		// winner's row exists now, so a second run takes the update path.
		result, err = a.activate(ctx, in, periodStart, periodEnd)
	}
	if err != nil {
		// The gateway has already charged the user at this point. Keep the
		// full context on record for manual reconciliation.
		utils.LogErrorWithUser(in.UserID, err,
			"subscription activation failed after confirmed charge, intent "+in.GatewayIntentID+" needs reconciliation")
		return nil, &PersistenceError{Op: "subscription activation", Err: err}
	}

	return result, nil
}

func (a *Activator) activate(ctx context.Context, in ActivationInput, periodStart, periodEnd time.Time) (*ActivationResult, error) {
	result := &ActivationResult{}

	err := a.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub models.Subscription
		err := tx.First(&sub, "user_id = ?", in.UserID).Error
		switch {
		case err == nil:
			sub.PlanID = in.PlanID
			sub.Status = models.SubscriptionActive
			sub.PeriodStart = periodStart
			sub.PeriodEnd = periodEnd
			sub.PaymentMethod = in.PaymentMethod
			if err := tx.Save(&sub).Error; err != nil {
				return err
			}
			result.Subscription = RecordResult{ID: sub.ID, Action: ActionUpdated}
		case errors.Is(err, gorm.ErrRecordNotFound):
			sub = models.Subscription{
				UserID:        in.UserID,
				PlanID:        in.PlanID,
				Status:        models.SubscriptionActive,
				PeriodStart:   periodStart,
				PeriodEnd:     periodEnd,
				PaymentMethod: in.PaymentMethod,
			}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
			result.Subscription = RecordResult{ID: sub.ID, Action: ActionCreated}
		default:
			return err
		}

		var pay models.Payment
		err = tx.First(&pay, "gateway_intent_id = ?", in.GatewayIntentID).Error
		switch {
		case err == nil && pay.Status == models.PaymentSucceeded:
			// Replayed activation; a succeeded ledger row never regresses.
			result.Payment = RecordResult{ID: pay.ID, Action: ActionUnchanged}
		case err == nil:
			pay.Status = models.PaymentSucceeded
			if err := tx.Save(&pay).Error; err != nil {
				return err
			}
			result.Payment = RecordResult{ID: pay.ID, Action: ActionUpdated}
		case errors.Is(err, gorm.ErrRecordNotFound):
			pay = models.Payment{
				UserID:          in.UserID,
				PlanID:          in.PlanID,
				Amount:          in.AmountMinor,
				Currency:        in.Currency,
				GatewayIntentID: in.GatewayIntentID,
				Status:          models.PaymentSucceeded,
				Method:          in.PaymentMethod,
			}
			if err := tx.Create(&pay).Error; err != nil {
				return err
			}
			result.Payment = RecordResult{ID: pay.ID, Action: ActionCreated}
		default:
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
