package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pizocrm/internal/events"
	"pizocrm/internal/metrics"
	"pizocrm/internal/models"
)

// Column is one stage of the board with its aggregates.
type Column struct {
	Status              models.LeadStatus `json:"status"`
	Leads               []BoardLead       `json:"leads"`
	Count               int               `json:"count"`
	TotalValue          decimal.Decimal   `json:"totalValue"`
	PotentialCommission decimal.Decimal   `json:"potentialCommission"`
}

// BoardLead is a lead as rendered on a card.
type BoardLead struct {
	models.Lead
	DormantDaysRemaining *int    `json:"dormantDaysRemaining,omitempty"`
	DormantStatus        *string `json:"dormantStatus,omitempty"`
}

type Board struct {
	Columns []Column `json:"columns"`
	Summary Summary  `json:"summary"`
}

type PipelineService struct {
	Store  LeadStore
	Events EventPublisher
	Logger *zap.Logger
	Clock  Clock
}

func NewPipelineService(store LeadStore, pub EventPublisher, logger *zap.Logger, clock Clock) *PipelineService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PipelineService{Store: store, Events: pub, Logger: logger, Clock: clock}
}

// GroupByStatus partitions leads into the seven stages. Every stage key is
// present; order inside a column follows the input. Leads with an unknown
// status are dropped from the board.
func GroupByStatus(leads []models.Lead) map[models.LeadStatus][]models.Lead {
	out := make(map[models.LeadStatus][]models.Lead, len(models.PipelineStatuses))
	for _, st := range models.PipelineStatuses {
		out[st] = []models.Lead{}
	}
	for _, l := range leads {
		if col, ok := out[l.Estatus]; ok {
			out[l.Estatus] = append(col, l)
		}
	}
	return out
}

// Board fetches with the filter, groups and aggregates.
func (s *PipelineService) Board(ctx context.Context, filter models.LeadFilter) (*Board, error) {
	now := s.Clock.now()
	sf, err := ToStoreFilter(filter, now)
	if err != nil {
		return nil, err
	}
	leads, err := s.Store.List(ctx, sf)
	if err != nil {
		metrics.RecordStoreError("list")
		s.Logger.Error("load board failed", zap.Error(err))
		return nil, fmt.Errorf("load board: %w", err)
	}
	leads = ApplySearch(leads, filter.SearchTerm)
	return BuildBoard(leads, now), nil
}

// BuildBoard is the pure part of Board.
func BuildBoard(leads []models.Lead, now time.Time) *Board {
	grouped := GroupByStatus(leads)
	b := &Board{
		Columns: make([]Column, 0, len(models.PipelineStatuses)),
		Summary: Summarize(leads, now),
	}
	for _, st := range models.PipelineStatuses {
		col := Column{
			Status:              st,
			Leads:               make([]BoardLead, 0, len(grouped[st])),
			TotalValue:          decimal.Zero,
			PotentialCommission: decimal.Zero,
		}
		for i := range grouped[st] {
			l := grouped[st][i]
			col.Leads = append(col.Leads, BoardLead{
				Lead:                 l,
				DormantDaysRemaining: DaysRemaining(&l, now),
				DormantStatus:        FormatDormantStatus(&l, now),
			})
			col.TotalValue = col.TotalValue.Add(decimal.NewFromFloat(l.Price))
			col.PotentialCommission = col.PotentialCommission.Add(PotentialCommission(&l))
		}
		col.Count = len(col.Leads)
		b.Columns = append(b.Columns, col)
	}
	return b
}

// ChangeStatus moves a lead to another stage and returns the stored record.
// Leaving cerrada or cancelada needs confirm.
func (s *PipelineService) ChangeStatus(ctx context.Context, id string, to models.LeadStatus, confirm bool) (*models.Lead, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	current, err := s.Store.GetByID(ctx, id)
	if err != nil {
		metrics.RecordStoreError("get")
		return nil, fmt.Errorf("get lead %s: %w", id, err)
	}
	if current == nil {
		return nil, ErrLeadNotFound
	}

	switch checkTransition(current.Estatus, to) {
	case transitionInvalid:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	case transitionNeedsConfirmation:
		if !confirm {
			return nil, ErrTransitionNeedsConfirmation
		}
	}

	patch := StatusPatch(current, to, s.Clock.now())
	if err := s.Store.Update(ctx, id, patch); err != nil {
		metrics.RecordStoreError("status")
		s.Logger.Error("change status failed",
			zap.String("lead_id", id), zap.String("from", string(current.Estatus)),
			zap.String("to", string(to)), zap.Error(err))
		return nil, fmt.Errorf("change status %s: %w", id, err)
	}
	metrics.RecordStatusChange(string(to))

	updated, err := s.Store.GetByID(ctx, id)
	if err != nil {
		metrics.RecordStoreError("get")
		return nil, fmt.Errorf("get lead %s: %w", id, err)
	}
	if updated == nil {
		return nil, ErrLeadNotFound
	}
	publish(ctx, s.Events, s.Logger, s.Clock, events.LeadEvent{
		Type: events.LeadStatusChanged, LeadID: id, Asesor: updated.Asesor,
		From: string(current.Estatus), To: string(to),
	})
	return updated, nil
}

// StatusPatch stamps fechaCierre when closing and clears it when a closed
// lead is reopened.
func StatusPatch(current *models.Lead, to models.LeadStatus, now time.Time) models.LeadPatch {
	patch := models.LeadPatch{Estatus: &to}
	switch {
	case to == models.StatusCerrada && current.Estatus != models.StatusCerrada:
		closed := now
		patch.FechaCierre = &closed
	case to != models.StatusCerrada && current.FechaCierre != nil:
		patch.ClearFechaCierre = true
	}
	return patch
}

// DeleteLead removes the lead for good.
func (s *PipelineService) DeleteLead(ctx context.Context, id string, confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}
	current, err := s.Store.GetByID(ctx, id)
	if err != nil {
		metrics.RecordStoreError("get")
		return fmt.Errorf("get lead %s: %w", id, err)
	}
	if current == nil {
		return ErrLeadNotFound
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		metrics.RecordStoreError("delete")
		s.Logger.Error("delete lead failed", zap.String("lead_id", id), zap.Error(err))
		return fmt.Errorf("delete lead %s: %w", id, err)
	}
	s.Logger.Info("lead deleted", zap.String("lead_id", id), zap.String("asesor", current.Asesor))
	publish(ctx, s.Events, s.Logger, s.Clock, events.LeadEvent{
		Type: events.LeadDeleted, LeadID: id, Asesor: current.Asesor, From: string(current.Estatus),
	})
	return nil
}
