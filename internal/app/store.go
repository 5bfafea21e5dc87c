package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"pizocrm/internal/config"
	"pizocrm/internal/handlers"
	"pizocrm/internal/models"
	"pizocrm/internal/repositories"
	"pizocrm/internal/services"
)

// stores is what the selected driver provides.
type stores struct {
	leads     services.LeadStore
	promoters services.PromoterStore
	pinger    handlers.Pinger
	close     func()
}

func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := repositories.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &stores{
			leads:     repositories.NewLeadRepository(db),
			promoters: repositories.NewPromoterRepository(db),
			pinger:    db,
			close: func() {
				if err := db.Close(); err != nil {
					log.Warn("close postgres", zap.Error(err))
				}
			},
		}, nil

	case "mongo":
		client, err := repositories.ConnectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		leads := repositories.NewMongoLeadRepository(db)
		if err := leads.EnsureIndexes(ctx); err != nil {
			log.Warn("mongo indexes", zap.Error(err))
		}
		return &stores{
			leads:     leads,
			promoters: repositories.NewMongoPromoterRepository(db),
			pinger:    mongoPinger{client},
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Warn("close mongo", zap.Error(err))
				}
			},
		}, nil

	case "memory":
		log.Warn("using in-memory store; data is lost on restart")
		return &stores{
			leads:     repositories.NewMemoryLeadRepository(),
			promoters: repositories.NewMemoryPromoterRepository(),
			close:     func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

type mongoPinger struct{ client *mongo.Client }

func (p mongoPinger) PingContext(ctx context.Context) error { return p.client.Ping(ctx, nil) }

// timeoutLeadStore bounds every store call. Requests and the cron job share it.
type timeoutLeadStore struct {
	next    services.LeadStore
	timeout time.Duration
}

func withLeadTimeout(next services.LeadStore, d time.Duration) services.LeadStore {
	if d <= 0 {
		return next
	}
	return &timeoutLeadStore{next: next, timeout: d}
}

func (s *timeoutLeadStore) List(ctx context.Context, f models.StoreFilter) ([]models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.List(ctx, f)
}

func (s *timeoutLeadStore) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.GetByID(ctx, id)
}

func (s *timeoutLeadStore) Create(ctx context.Context, lead *models.Lead) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Create(ctx, lead)
}

func (s *timeoutLeadStore) Update(ctx context.Context, id string, patch models.LeadPatch) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Update(ctx, id, patch)
}

func (s *timeoutLeadStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Delete(ctx, id)
}

func (s *timeoutLeadStore) WakeIfExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.WakeIfExpired(ctx, id, now)
}

func (s *timeoutLeadStore) ListExpiredDormant(ctx context.Context, now time.Time) ([]models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.ListExpiredDormant(ctx, now)
}
