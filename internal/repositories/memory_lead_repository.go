package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pizocrm/internal/models"
)

// MemoryLeadRepository keeps leads in process. It backs the "memory" driver
// and the service tests.
type MemoryLeadRepository struct {
	mu    sync.RWMutex
	leads map[string]models.Lead
	order []string
}

func NewMemoryLeadRepository(seed ...models.Lead) *MemoryLeadRepository {
	r := &MemoryLeadRepository{leads: make(map[string]models.Lead)}
	for _, l := range seed {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		r.leads[l.ID] = cloneLead(l)
		r.order = append(r.order, l.ID)
	}
	return r
}

func (r *MemoryLeadRepository) List(ctx context.Context, f models.StoreFilter) ([]models.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Lead, 0, len(r.order))
	for _, id := range r.order {
		l := r.leads[id]
		if MatchesStoreFilter(&l, f) {
			out = append(out, cloneLead(l))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryLeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	c := cloneLead(l)
	return &c, nil
}

func (r *MemoryLeadRepository) Create(ctx context.Context, lead *models.Lead) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	l := cloneLead(*lead)
	l.ID = id
	r.leads[id] = l
	r.order = append(r.order, id)
	return id, nil
}

func (r *MemoryLeadRepository) Update(ctx context.Context, id string, patch models.LeadPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leads[id]
	if !ok {
		return nil
	}
	patch.Apply(&l)
	r.leads[id] = l
	return nil
}

func (r *MemoryLeadRepository) WakeIfExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leads[id]
	if !ok || !l.Dormido || l.DormidoHasta == nil || l.DormidoHasta.After(now) {
		return false, nil
	}
	l.Dormido = false
	l.DormidoHasta = nil
	r.leads[id] = l
	return true, nil
}

func (r *MemoryLeadRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leads[id]; !ok {
		return nil
	}
	delete(r.leads, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryLeadRepository) ListExpiredDormant(ctx context.Context, now time.Time) ([]models.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Lead
	for _, id := range r.order {
		l := r.leads[id]
		if l.Dormido && l.DormidoHasta != nil && !l.DormidoHasta.After(now) {
			out = append(out, cloneLead(l))
		}
	}
	return out, nil
}

// MatchesStoreFilter is the filter every driver applies: transaction type,
// advisor (owner or ally), promoter and effective dormancy.
func MatchesStoreFilter(l *models.Lead, f models.StoreFilter) bool {
	if f.TransactionType != nil && l.TransactionType != *f.TransactionType {
		return false
	}
	if f.Asesor != nil && l.Asesor != *f.Asesor && l.AsesorAliado != *f.Asesor {
		return false
	}
	if f.PromotorID != nil && l.PromotorID != *f.PromotorID {
		return false
	}
	if !f.ShowDormant {
		now := f.Now
		if now.IsZero() {
			now = time.Now()
		}
		if l.IsEffectivelyDormant(now) {
			return false
		}
	}
	return true
}

// newest first, ties broken by id so the order is stable
func sortNewestFirst(leads []models.Lead) {
	sort.SliceStable(leads, func(i, j int) bool {
		if !leads[i].FechaCreacion.Equal(leads[j].FechaCreacion) {
			return leads[i].FechaCreacion.After(leads[j].FechaCreacion)
		}
		return leads[i].ID < leads[j].ID
	})
}

func cloneLead(l models.Lead) models.Lead {
	c := l
	c.Comision = cloneFloat(l.Comision)
	c.PorcentajePizo = cloneFloat(l.PorcentajePizo)
	c.DormidoHasta = cloneTime(l.DormidoHasta)
	c.FechaCierre = cloneTime(l.FechaCierre)
	return c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
