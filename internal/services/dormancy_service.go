package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"pizocrm/internal/events"
	"pizocrm/internal/metrics"
	"pizocrm/internal/models"
)

const day = 24 * time.Hour

// SnoozeDays are the selectable snooze lengths. 0 wakes the lead.
var SnoozeDays = []int{1, 2, 3, 5, 7, 14, 30, 60, 180}

func validSnooze(days int) bool {
	if days == 0 {
		return true
	}
	for _, d := range SnoozeDays {
		if d == days {
			return true
		}
	}
	return false
}

type DormancyService struct {
	Store    LeadStore
	Events   EventPublisher
	Notifier Notifier
	Logger   *zap.Logger
	Clock    Clock
}

func NewDormancyService(store LeadStore, pub EventPublisher, notifier Notifier, logger *zap.Logger, clock Clock) *DormancyService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DormancyService{Store: store, Events: pub, Notifier: notifier, Logger: logger, Clock: clock}
}

// SetDormant snoozes the lead for days, or wakes it when days is 0. The
// stored record is refetched and returned.
func (s *DormancyService) SetDormant(ctx context.Context, id string, days int) (*models.Lead, error) {
	if !validSnooze(days) {
		return nil, ErrInvalidSnoozeDays
	}
	current, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrLeadNotFound
	}

	patch, action := DormancyPatch(days, s.Clock.now())
	if err := s.Store.Update(ctx, id, patch); err != nil {
		metrics.RecordStoreError("dormancy")
		s.Logger.Error("dormancy update failed", zap.String("lead_id", id), zap.Int("days", days), zap.Error(err))
		return nil, fmt.Errorf("set dormant %s: %w", id, err)
	}
	metrics.RecordDormancy(action)

	updated, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrLeadNotFound
	}
	publish(ctx, s.Events, s.Logger, s.Clock, events.LeadEvent{
		Type: events.LeadDormancyChanged, LeadID: id, Asesor: updated.Asesor, To: action,
	})
	return updated, nil
}

// DormancyPatch builds the update for a snooze of days (0 = wake).
func DormancyPatch(days int, now time.Time) (models.LeadPatch, string) {
	if days == 0 {
		off := false
		return models.LeadPatch{Dormido: &off, ClearDormidoHasta: true}, "wake"
	}
	on := true
	until := now.Add(time.Duration(days) * day)
	return models.LeadPatch{Dormido: &on, DormidoHasta: &until}, "snooze"
}

// DaysRemaining returns nil for a lead that is not dormant, otherwise the
// whole days left rounded up and never negative.
func DaysRemaining(l *models.Lead, now time.Time) *int {
	if l == nil || !l.Dormido {
		return nil
	}
	n := 0
	if l.DormidoHasta != nil {
		left := l.DormidoHasta.Sub(now)
		if left > 0 {
			n = int(math.Ceil(float64(left) / float64(day)))
		}
	}
	return &n
}

// FormatDormantStatus turns DaysRemaining into the label shown on the card.
func FormatDormantStatus(l *models.Lead, now time.Time) *string {
	n := DaysRemaining(l, now)
	if n == nil {
		return nil
	}
	var s string
	switch *n {
	case 0:
		s = "until today"
	case 1:
		s = "until tomorrow"
	default:
		s = fmt.Sprintf("until in %d days", *n)
	}
	return &s
}

// WakeExpired flips dormido back to false on every lead whose snooze has
// elapsed and tells the owner. It returns how many leads were woken; one
// failing lead does not stop the pass.
func (s *DormancyService) WakeExpired(ctx context.Context) (int, error) {
	now := s.Clock.now()
	expired, err := s.Store.ListExpiredDormant(ctx, now)
	if err != nil {
		metrics.RecordStoreError("list_expired")
		return 0, fmt.Errorf("list expired dormant: %w", err)
	}

	woken := 0
	for _, lead := range expired {
		ok, err := s.Store.WakeIfExpired(ctx, lead.ID, now)
		if err != nil {
			metrics.RecordStoreError("wake")
			s.Logger.Warn("wake lead failed", zap.String("lead_id", lead.ID), zap.Error(err))
			continue
		}
		if !ok {
			// snoozed again or deleted since the listing
			continue
		}
		woken++
		publish(ctx, s.Events, s.Logger, s.Clock, events.LeadEvent{
			Type: events.LeadDormancyChanged, LeadID: lead.ID, Asesor: lead.Asesor, To: "wake",
		})
		if s.Notifier != nil {
			if err := s.Notifier.LeadAwake(ctx, lead); err != nil {
				s.Logger.Warn("wake notification failed", zap.String("lead_id", lead.ID), zap.Error(err))
			}
		}
	}
	metrics.RecordWoken(woken)
	if woken > 0 {
		s.Logger.Info("woke expired dormant leads", zap.Int("count", woken), zap.Int("candidates", len(expired)))
	}
	return woken, nil
}
