package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pizocrm/internal/events"
	"pizocrm/internal/metrics"
	"pizocrm/internal/models"
)

type LeadService struct {
	Store  LeadStore
	Events EventPublisher
	Logger *zap.Logger
	Clock  Clock
}

func NewLeadService(store LeadStore, pub EventPublisher, logger *zap.Logger, clock Clock) *LeadService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadService{Store: store, Events: pub, Logger: logger, Clock: clock}
}

// Create stores a new lead. Advisors create in propuesta; the public intake
// passes StatusForm.
func (s *LeadService) Create(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	if lead.Estatus == "" {
		lead.Estatus = models.StatusPropuesta
	}
	if err := validateLead(lead); err != nil {
		return nil, err
	}
	lead.FechaCreacion = s.Clock.now()
	if lead.Estatus == models.StatusCerrada && lead.FechaCierre == nil {
		closed := lead.FechaCreacion
		lead.FechaCierre = &closed
	}

	id, err := s.Store.Create(ctx, lead)
	if err != nil {
		metrics.RecordStoreError("create")
		s.Logger.Error("create lead failed", zap.Error(err))
		return nil, fmt.Errorf("create lead: %w", err)
	}
	lead.ID = id

	s.publish(ctx, events.LeadEvent{Type: events.LeadCreated, LeadID: id, Asesor: lead.Asesor, To: string(lead.Estatus)})
	return s.GetByID(ctx, id)
}

func (s *LeadService) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			return nil, err
		}
		metrics.RecordStoreError("get")
		return nil, fmt.Errorf("get lead %s: %w", id, err)
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

// List fetches through the store and applies the free-text search locally.
func (s *LeadService) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	sf, err := ToStoreFilter(filter, s.Clock.now())
	if err != nil {
		return nil, err
	}
	leads, err := s.Store.List(ctx, sf)
	if err != nil {
		metrics.RecordStoreError("list")
		s.Logger.Error("list leads failed", zap.Error(err))
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return ApplySearch(leads, filter.SearchTerm), nil
}

// Update applies modal-editor changes and refetches. Status and dormancy have
// their own flows and are ignored here.
func (s *LeadService) Update(ctx context.Context, id string, patch models.LeadPatch) (*models.Lead, error) {
	patch.Estatus = nil
	patch.Dormido = nil
	patch.DormidoHasta = nil
	patch.ClearDormidoHasta = false
	patch.FechaCierre = nil
	patch.ClearFechaCierre = false
	if patch.Empty() {
		return nil, ErrNothingToUpdate
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Store.Update(ctx, id, patch); err != nil {
		metrics.RecordStoreError("update")
		s.Logger.Error("update lead failed", zap.String("lead_id", id), zap.Error(err))
		return nil, fmt.Errorf("update lead %s: %w", id, err)
	}
	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.LeadEvent{Type: events.LeadUpdated, LeadID: id, Asesor: updated.Asesor})
	return updated, nil
}

// MaxQuality is the highest quality level.
const MaxQuality = 5

// UpdateQuality writes the quality level, then refetches like every other
// mutation.
func (s *LeadService) UpdateQuality(ctx context.Context, id string, calidad int) (*models.Lead, error) {
	if calidad < 0 || calidad > MaxQuality {
		return nil, ErrInvalidQuality
	}
	return s.Update(ctx, id, models.LeadPatch{Calidad: &calidad})
}

func (s *LeadService) publish(ctx context.Context, ev events.LeadEvent) {
	publish(ctx, s.Events, s.Logger, s.Clock, ev)
}

// publish is fire-and-forget: a broker outage never fails the mutation.
func publish(ctx context.Context, pub EventPublisher, logger *zap.Logger, clock Clock, ev events.LeadEvent) {
	if pub == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = clock.now()
	}
	if err := pub.Publish(ctx, ev); err != nil {
		logger.Warn("publish lead event failed",
			zap.String("type", ev.Type), zap.String("lead_id", ev.LeadID), zap.Error(err))
	}
}

// ToStoreFilter validates the client filter and keeps the server-side part.
func ToStoreFilter(f models.LeadFilter, now time.Time) (models.StoreFilter, error) {
	sf := models.StoreFilter{ShowDormant: f.ShowDormant, Now: now}

	tt := strings.TrimSpace(f.TransactionType)
	if tt != "" && tt != models.TransactionFilterAll {
		t := models.TransactionType(tt)
		if !t.Valid() {
			return sf, fmt.Errorf("%w: %q", ErrInvalidTransactionType, tt)
		}
		sf.TransactionType = &t
	}

	asesor := strings.TrimSpace(f.Asesor)
	if asesor != "" && asesor != "all" {
		sf.Asesor = &asesor
	}
	return sf, nil
}

// ApplySearch keeps leads whose name, phone, email, condo, origin or notes
// contain term, case-insensitively. Order is preserved.
func ApplySearch(leads []models.Lead, term string) []models.Lead {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return leads
	}
	out := make([]models.Lead, 0, len(leads))
	for _, l := range leads {
		for _, field := range []string{l.NombreCompleto, l.Telefono, l.Correo, l.CondoName, l.OrigenTexto, l.OrigenURL, l.Notas} {
			if strings.Contains(strings.ToLower(field), term) {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

func validateLead(l *models.Lead) error {
	if !l.Estatus.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, l.Estatus)
	}
	if l.TransactionType != "" && !l.TransactionType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, l.TransactionType)
	}
	if l.Price < 0 {
		return ErrInvalidPrice
	}
	if !percentOK(l.Comision) || !percentOK(l.PorcentajePizo) {
		return ErrInvalidPercent
	}
	if l.Calidad < 0 || l.Calidad > MaxQuality {
		return ErrInvalidQuality
	}
	return nil
}

func validatePatch(p models.LeadPatch) error {
	if p.TransactionType != nil && !p.TransactionType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, *p.TransactionType)
	}
	if p.Price != nil && *p.Price < 0 {
		return ErrInvalidPrice
	}
	if !percentOK(p.Comision) || !percentOK(p.PorcentajePizo) {
		return ErrInvalidPercent
	}
	if p.Calidad != nil && (*p.Calidad < 0 || *p.Calidad > MaxQuality) {
		return ErrInvalidQuality
	}
	return nil
}

func percentOK(v *float64) bool {
	return v == nil || (*v >= 0 && *v <= 100)
}
