package services

import (
	"context"
	"time"

	"pizocrm/internal/events"
	"pizocrm/internal/models"
)

// LeadStore is the data-access collaborator for negocios. Implementations live
// in internal/repositories.
type LeadStore interface {
	List(ctx context.Context, filter models.StoreFilter) ([]models.Lead, error)
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) (string, error)
	Update(ctx context.Context, id string, patch models.LeadPatch) error
	Delete(ctx context.Context, id string) error
	ListExpiredDormant(ctx context.Context, now time.Time) ([]models.Lead, error)
	// WakeIfExpired wakes the lead only while its snooze is still elapsed at
	// now, and reports whether it did.
	WakeIfExpired(ctx context.Context, id string, now time.Time) (bool, error)
}

// PromoterStore persists promoters.
type PromoterStore interface {
	Create(ctx context.Context, p *models.Promoter) (string, error)
	GetByID(ctx context.Context, id string) (*models.Promoter, error)
	List(ctx context.Context) ([]models.Promoter, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// Notifier tells people about pipeline events (wake-ups).
type Notifier interface {
	LeadAwake(ctx context.Context, lead models.Lead) error
}

// EventPublisher emits lead events to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, ev events.LeadEvent) error
}

// Clock lets tests pin "now".
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
