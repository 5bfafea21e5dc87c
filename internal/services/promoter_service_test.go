package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizocrm/internal/models"
	"pizocrm/internal/repositories"
)

func TestCreatePromoterRejectsDuplicateNames(t *testing.T) {
	svc := NewPromoterService(repositories.NewMemoryPromoterRepository(), repositories.NewMemoryLeadRepository(), nil, fixedClock())

	p, err := svc.Create(context.Background(), &models.Promoter{Name: "  José  Martínez ", Code: "jm01"})
	require.NoError(t, err)
	assert.Equal(t, "José  Martínez", p.Name)
	assert.Equal(t, "JM01", p.Code)
	assert.True(t, p.Active)

	for _, name := range []string{"jose martinez", "JOSÉ MARTÍNEZ", "Jose   Martinez"} {
		_, err := svc.Create(context.Background(), &models.Promoter{Name: name})
		assert.ErrorIs(t, err, ErrPromoterNameTaken, name)
	}

	_, err = svc.Create(context.Background(), &models.Promoter{Name: "   "})
	assert.ErrorIs(t, err, ErrPromoterNameEmpty)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSetPromoterActive(t *testing.T) {
	svc := NewPromoterService(repositories.NewMemoryPromoterRepository(), repositories.NewMemoryLeadRepository(), nil, fixedClock())
	p, err := svc.Create(context.Background(), &models.Promoter{Name: "Inmobiliaria Sol"})
	require.NoError(t, err)

	got, err := svc.SetActive(context.Background(), p.ID, false)
	require.NoError(t, err)
	assert.False(t, got.Active)

	_, err = svc.SetActive(context.Background(), "missing", true)
	assert.ErrorIs(t, err, ErrPromoterNotFound)
}

func TestReferredLeads(t *testing.T) {
	promoters := repositories.NewMemoryPromoterRepository()
	svc := NewPromoterService(promoters, nil, nil, fixedClock())
	p, err := svc.Create(context.Background(), &models.Promoter{Name: "Sol"})
	require.NoError(t, err)

	svc.Leads = repositories.NewMemoryLeadRepository(
		models.Lead{ID: "a", Asesor: "ana", PromotorID: p.ID, Price: 1000000, Comision: fp(5), Estatus: models.StatusPropuesta},
		models.Lead{ID: "b", Asesor: "luis", PromotorID: p.ID, Price: 1000000, Comision: fp(5), Estatus: models.StatusPropuesta,
			Dormido: true, DormidoHasta: tp(testNow.Add(day))},
		models.Lead{ID: "c", PromotorID: "other", Price: 1000000, Comision: fp(5)},
	)

	got, err := svc.Referred(context.Background(), p.ID, "")
	require.NoError(t, err)
	assert.Len(t, got.Leads, 2)
	assert.True(t, got.PotentialCommission.Equal(d("50000")))

	mine, err := svc.Referred(context.Background(), p.ID, "ana")
	require.NoError(t, err)
	require.Len(t, mine.Leads, 1)
	assert.Equal(t, "a", mine.Leads[0].ID)
	assert.True(t, mine.PotentialCommission.Equal(d("25000")))
}
