package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pizocrm/internal/events"
	"pizocrm/internal/models"
	"pizocrm/internal/repositories"
)

func newDormancyFixture(t *testing.T, seed ...models.Lead) (*DormancyService, *repositories.MemoryLeadRepository, *recordingPublisher) {
	t.Helper()
	store := repositories.NewMemoryLeadRepository(seed...)
	pub := &recordingPublisher{}
	return NewDormancyService(store, pub, nil, nil, fixedClock()), store, pub
}

func TestSetDormantSevenDaysRoundTrip(t *testing.T) {
	svc, _, pub := newDormancyFixture(t, models.Lead{ID: "L1", Estatus: models.StatusPropuesta})

	got, err := svc.SetDormant(context.Background(), "L1", 7)
	require.NoError(t, err)
	assert.True(t, got.Dormido)
	require.NotNil(t, got.DormidoHasta)
	assert.True(t, got.DormidoHasta.Equal(testNow.Add(7*day)))

	n := DaysRemaining(got, testNow.Add(time.Minute))
	require.NotNil(t, n)
	assert.Contains(t, []int{6, 7}, *n)
	assert.Equal(t, []string{events.LeadDormancyChanged}, pub.types())
}

func TestSetDormantWakeIsIdempotent(t *testing.T) {
	svc, _, _ := newDormancyFixture(t, models.Lead{ID: "L1", Estatus: models.StatusPropuesta,
		Dormido: true, DormidoHasta: tp(testNow.Add(3 * day))})

	first, err := svc.SetDormant(context.Background(), "L1", 0)
	require.NoError(t, err)
	second, err := svc.SetDormant(context.Background(), "L1", 0)
	require.NoError(t, err)

	for _, l := range []*models.Lead{first, second} {
		assert.False(t, l.Dormido)
		assert.Nil(t, l.DormidoHasta)
	}
}

func TestSetDormantRejectsUnknownLength(t *testing.T) {
	svc, _, pub := newDormancyFixture(t, models.Lead{ID: "L1"})

	for _, days := range []int{-1, 4, 10, 365} {
		_, err := svc.SetDormant(context.Background(), "L1", days)
		assert.ErrorIs(t, err, ErrInvalidSnoozeDays, "days=%d", days)
	}
	assert.Empty(t, pub.types())
}

func TestSetDormantMissingLead(t *testing.T) {
	svc, _, _ := newDormancyFixture(t)
	_, err := svc.SetDormant(context.Background(), "nope", 3)
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestSetDormantStoreFailure(t *testing.T) {
	store := new(MockLeadStore)
	boom := errors.New("connection reset")
	store.On("GetByID", mock.Anything, "L1").Return(&models.Lead{ID: "L1"}, nil)
	store.On("Update", mock.Anything, "L1", mock.Anything).Return(boom)

	svc := NewDormancyService(store, nil, nil, nil, fixedClock())
	_, err := svc.SetDormant(context.Background(), "L1", 1)
	assert.ErrorIs(t, err, boom)
	store.AssertExpectations(t)
}

func TestDaysRemaining(t *testing.T) {
	cases := []struct {
		name  string
		lead  models.Lead
		want  *int
		label *string
	}{
		{"awake", models.Lead{}, nil, nil},
		{"no end date", models.Lead{Dormido: true}, intp(0), strp("until today")},
		{"elapsed", models.Lead{Dormido: true, DormidoHasta: tp(testNow.Add(-2 * day))}, intp(0), strp("until today")},
		{"later today", models.Lead{Dormido: true, DormidoHasta: tp(testNow.Add(3 * time.Hour))}, intp(1), strp("until tomorrow")},
		{"exact day", models.Lead{Dormido: true, DormidoHasta: tp(testNow.Add(day))}, intp(1), strp("until tomorrow")},
		{"thirty", models.Lead{Dormido: true, DormidoHasta: tp(testNow.Add(30 * day))}, intp(30), strp("until in 30 days")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysRemaining(&tc.lead, testNow))
			assert.Equal(t, tc.label, FormatDormantStatus(&tc.lead, testNow))
		})
	}
}

func TestWakeExpired(t *testing.T) {
	notifier := new(MockNotifier)
	store := repositories.NewMemoryLeadRepository(
		models.Lead{ID: "due", Asesor: "ana", Dormido: true, DormidoHasta: tp(testNow.Add(-time.Hour))},
		models.Lead{ID: "later", Asesor: "ana", Dormido: true, DormidoHasta: tp(testNow.Add(time.Hour))},
		models.Lead{ID: "awake", Asesor: "ana"},
	)
	notifier.On("LeadAwake", mock.Anything, mock.MatchedBy(func(l models.Lead) bool { return l.ID == "due" })).
		Return(errors.New("smtp down"))

	svc := NewDormancyService(store, nil, notifier, nil, fixedClock())
	n, err := svc.WakeExpired(context.Background())
	require.NoError(t, err, "notification failures do not fail the pass")
	assert.Equal(t, 1, n)

	due, _ := store.GetByID(context.Background(), "due")
	assert.False(t, due.Dormido)
	assert.Nil(t, due.DormidoHasta)

	later, _ := store.GetByID(context.Background(), "later")
	assert.True(t, later.Dormido)
	notifier.AssertNumberOfCalls(t, "LeadAwake", 1)

	n, err = svc.WakeExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWakeJobHonoursCancelledContext(t *testing.T) {
	svc, store, _ := newDormancyFixture(t,
		models.Lead{ID: "due", Dormido: true, DormidoHasta: tp(testNow.Add(-time.Hour))})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	WakeJob(svc, time.Second)(ctx)

	due, _ := store.GetByID(context.Background(), "due")
	assert.True(t, due.Dormido)

	WakeJob(svc, time.Second)(context.Background())
	due, _ = store.GetByID(context.Background(), "due")
	assert.False(t, due.Dormido)
}

func intp(v int) *int       { return &v }
func strp(s string) *string { return &s }

// resnoozingStore snoozes every listed lead again right after the listing,
// as a user would between the job's read and its write.
type resnoozingStore struct {
	*repositories.MemoryLeadRepository
	until time.Time
}

func (s *resnoozingStore) ListExpiredDormant(ctx context.Context, now time.Time) ([]models.Lead, error) {
	leads, err := s.MemoryLeadRepository.ListExpiredDormant(ctx, now)
	if err != nil {
		return nil, err
	}
	on := true
	for _, l := range leads {
		if err := s.Update(ctx, l.ID, models.LeadPatch{Dormido: &on, DormidoHasta: &s.until}); err != nil {
			return nil, err
		}
	}
	return leads, nil
}

func TestWakeExpiredKeepsFreshSnooze(t *testing.T) {
	until := testNow.Add(7 * day)
	store := &resnoozingStore{
		MemoryLeadRepository: repositories.NewMemoryLeadRepository(
			models.Lead{ID: "due", Asesor: "ana", Dormido: true, DormidoHasta: tp(testNow.Add(-time.Hour))},
		),
		until: until,
	}
	notifier := new(MockNotifier)
	pub := &recordingPublisher{}

	svc := NewDormancyService(store, pub, notifier, nil, fixedClock())
	n, err := svc.WakeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, _ := store.GetByID(context.Background(), "due")
	assert.True(t, got.Dormido)
	require.NotNil(t, got.DormidoHasta)
	assert.True(t, got.DormidoHasta.Equal(until))
	notifier.AssertNotCalled(t, "LeadAwake", mock.Anything, mock.Anything)
	assert.Empty(t, pub.types())
}
