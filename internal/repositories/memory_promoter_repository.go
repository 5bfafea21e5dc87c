package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"pizocrm/internal/models"
)

type MemoryPromoterRepository struct {
	mu        sync.RWMutex
	promoters map[string]models.Promoter
}

func NewMemoryPromoterRepository() *MemoryPromoterRepository {
	return &MemoryPromoterRepository{promoters: make(map[string]models.Promoter)}
}

func (r *MemoryPromoterRepository) Create(ctx context.Context, p *models.Promoter) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *p
	c.ID = uuid.NewString()
	r.promoters[c.ID] = c
	return c.ID, nil
}

func (r *MemoryPromoterRepository) GetByID(ctx context.Context, id string) (*models.Promoter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.promoters[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// List returns promoters ordered by name.
func (r *MemoryPromoterRepository) List(ctx context.Context) ([]models.Promoter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Promoter, 0, len(r.promoters))
	for _, p := range r.promoters {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryPromoterRepository) SetActive(ctx context.Context, id string, active bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.promoters[id]
	if !ok {
		return nil
	}
	p.Active = active
	r.promoters[id] = p
	return nil
}
