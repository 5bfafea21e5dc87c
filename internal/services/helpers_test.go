package services

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"pizocrm/internal/events"
	"pizocrm/internal/models"
)

var testNow = time.Date(2026, 5, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() Clock { return func() time.Time { return testNow } }

func fp(v float64) *float64 { return &v }

func tp(t time.Time) *time.Time { return &t }

// recordingPublisher keeps every event for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.LeadEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.LeadEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) List(ctx context.Context, f models.StoreFilter) ([]models.Lead, error) {
	args := m.Called(ctx, f)
	leads, _ := args.Get(0).([]models.Lead)
	return leads, args.Error(1)
}

func (m *MockLeadStore) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	args := m.Called(ctx, id)
	lead, _ := args.Get(0).(*models.Lead)
	return lead, args.Error(1)
}

func (m *MockLeadStore) Create(ctx context.Context, lead *models.Lead) (string, error) {
	args := m.Called(ctx, lead)
	return args.String(0), args.Error(1)
}

func (m *MockLeadStore) Update(ctx context.Context, id string, patch models.LeadPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockLeadStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadStore) ListExpiredDormant(ctx context.Context, now time.Time) ([]models.Lead, error) {
	args := m.Called(ctx, now)
	leads, _ := args.Get(0).([]models.Lead)
	return leads, args.Error(1)
}

func (m *MockLeadStore) WakeIfExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	args := m.Called(ctx, id, now)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) LeadAwake(ctx context.Context, lead models.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}
