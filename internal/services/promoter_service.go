package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pizocrm/internal/models"
	"pizocrm/internal/utils"
)

type PromoterService struct {
	Store  PromoterStore
	Leads  LeadStore
	Logger *zap.Logger
	Clock  Clock
}

func NewPromoterService(store PromoterStore, leads LeadStore, logger *zap.Logger, clock Clock) *PromoterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PromoterService{Store: store, Leads: leads, Logger: logger, Clock: clock}
}

// Create registers a promoter. Names are unique ignoring case, accents and
// extra spaces.
func (s *PromoterService) Create(ctx context.Context, p *models.Promoter) (*models.Promoter, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, ErrPromoterNameEmpty
	}
	existing, err := s.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list promoters: %w", err)
	}
	key := utils.NormalizeName(p.Name)
	for _, e := range existing {
		if utils.NormalizeName(e.Name) == key {
			return nil, fmt.Errorf("%w: %s", ErrPromoterNameTaken, e.Name)
		}
	}

	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Active = true
	p.CreatedAt = s.Clock.now()

	id, err := s.Store.Create(ctx, p)
	if err != nil {
		s.Logger.Error("create promoter failed", zap.String("name", p.Name), zap.Error(err))
		return nil, fmt.Errorf("create promoter: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *PromoterService) Get(ctx context.Context, id string) (*models.Promoter, error) {
	p, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get promoter %s: %w", id, err)
	}
	if p == nil {
		return nil, ErrPromoterNotFound
	}
	return p, nil
}

func (s *PromoterService) List(ctx context.Context) ([]models.Promoter, error) {
	out, err := s.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list promoters: %w", err)
	}
	return out, nil
}

func (s *PromoterService) SetActive(ctx context.Context, id string, active bool) (*models.Promoter, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Store.SetActive(ctx, id, active); err != nil {
		return nil, fmt.Errorf("set promoter %s active: %w", id, err)
	}
	return s.Get(ctx, id)
}

// ReferredLeads is the promoter's book with the platform commission it generates.
type ReferredLeads struct {
	Promoter            models.Promoter `json:"promoter"`
	Leads               []models.Lead   `json:"leads"`
	PotentialCommission decimal.Decimal `json:"potentialCommission"`
	PotentialLabel      string          `json:"potentialCommissionLabel"`
}

// Referred lists the leads referencing the promoter, dormant included. A
// non-empty asesor limits them to that advisor's book (owner or ally).
func (s *PromoterService) Referred(ctx context.Context, id, asesor string) (*ReferredLeads, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	f := models.StoreFilter{PromotorID: &p.ID, ShowDormant: true, Now: s.Clock.now()}
	if asesor != "" {
		f.Asesor = &asesor
	}
	leads, err := s.Leads.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list referred leads: %w", err)
	}
	total := decimal.Zero
	for i := range leads {
		total = total.Add(PotentialCommission(&leads[i]))
	}
	return &ReferredLeads{
		Promoter:            *p,
		Leads:               leads,
		PotentialCommission: total,
		PotentialLabel:      FormatMXN(total),
	}, nil
}
