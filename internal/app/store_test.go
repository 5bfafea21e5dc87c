package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pizocrm/internal/config"
	"pizocrm/internal/models"
	"pizocrm/internal/repositories"
	"pizocrm/internal/services"
)

// deadlineStore records whether calls arrive with a deadline.
type deadlineStore struct {
	services.LeadStore
	sawDeadline bool
}

func (s *deadlineStore) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	_, s.sawDeadline = ctx.Deadline()
	return nil, nil
}

func TestWithLeadTimeoutSetsDeadline(t *testing.T) {
	inner := &deadlineStore{}
	store := withLeadTimeout(inner, time.Second)

	_, err := store.GetByID(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, inner.sawDeadline)
}

func TestWithLeadTimeoutZeroIsPassthrough(t *testing.T) {
	inner := repositories.NewMemoryLeadRepository()
	assert.Same(t, services.LeadStore(inner), withLeadTimeout(inner, 0))
}

func TestOpenStoresMemory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = "memory"

	st, err := openStores(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer st.close()

	id, err := st.leads.Create(context.Background(), &models.Lead{CondoName: "Torre Sol", Estatus: models.StatusForm})
	require.NoError(t, err)
	got, err := st.leads.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Torre Sol", got.CondoName)
	assert.Nil(t, st.pinger)
}

func TestOpenStoresUnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = "sqlite"

	_, err := openStores(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "sqlite")
}

func TestBuildNotifierNoneConfigured(t *testing.T) {
	assert.Nil(t, buildNotifier(&config.Config{}, zap.NewNop()))
}

func TestBuildNotifierEmailOnly(t *testing.T) {
	cfg := &config.Config{}
	cfg.Email.SMTPHost = "smtp.example.com"
	cfg.Email.SMTPPort = 587

	n := buildNotifier(cfg, zap.NewNop())
	m, ok := n.(services.MultiNotifier)
	require.True(t, ok)
	assert.Len(t, m, 1)
}
