package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizocrm/internal/events"
	"pizocrm/internal/models"
	"pizocrm/internal/repositories"
)

func TestCreateLeadDefaults(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewLeadService(repositories.NewMemoryLeadRepository(), pub, nil, fixedClock())

	got, err := svc.Create(context.Background(), &models.Lead{
		TransactionType: models.TransactionRenta, Price: 18000, NombreCompleto: "Ana", Asesor: "ana",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, models.StatusPropuesta, got.Estatus)
	assert.True(t, got.FechaCreacion.Equal(testNow))
	assert.Nil(t, got.FechaCierre)
	assert.Equal(t, []string{events.LeadCreated}, pub.types())

	closed, err := svc.Create(context.Background(), &models.Lead{Estatus: models.StatusCerrada})
	require.NoError(t, err)
	require.NotNil(t, closed.FechaCierre)
}

func TestCreateLeadValidation(t *testing.T) {
	svc := NewLeadService(repositories.NewMemoryLeadRepository(), nil, nil, fixedClock())
	cases := []struct {
		lead models.Lead
		err  error
	}{
		{models.Lead{Estatus: "ganada"}, ErrInvalidStatus},
		{models.Lead{TransactionType: "permuta"}, ErrInvalidTransactionType},
		{models.Lead{Price: -1}, ErrInvalidPrice},
		{models.Lead{Comision: fp(101)}, ErrInvalidPercent},
		{models.Lead{PorcentajePizo: fp(-5)}, ErrInvalidPercent},
		{models.Lead{Calidad: 6}, ErrInvalidQuality},
	}
	for _, tc := range cases {
		l := tc.lead
		_, err := svc.Create(context.Background(), &l)
		assert.ErrorIs(t, err, tc.err)
		assert.True(t, IsValidation(err))
	}
}

func TestUpdateLeadIgnoresStatusAndDormancy(t *testing.T) {
	store := repositories.NewMemoryLeadRepository(models.Lead{ID: "L1", Estatus: models.StatusPropuesta, Notas: "old"})
	svc := NewLeadService(store, nil, nil, fixedClock())

	notes := "new"
	closed := models.StatusCerrada
	on := true
	got, err := svc.Update(context.Background(), "L1", models.LeadPatch{Notas: &notes, Estatus: &closed, Dormido: &on})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Notas)
	assert.Equal(t, models.StatusPropuesta, got.Estatus)
	assert.False(t, got.Dormido)

	_, err = svc.Update(context.Background(), "L1", models.LeadPatch{Estatus: &closed})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	_, err = svc.Update(context.Background(), "missing", models.LeadPatch{Notas: &notes})
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestUpdateQualityRefetches(t *testing.T) {
	store := repositories.NewMemoryLeadRepository(models.Lead{ID: "L1"})
	svc := NewLeadService(store, nil, nil, fixedClock())

	got, err := svc.UpdateQuality(context.Background(), "L1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Calidad)

	_, err = svc.UpdateQuality(context.Background(), "L1", 9)
	assert.ErrorIs(t, err, ErrInvalidQuality)
}

func TestToStoreFilter(t *testing.T) {
	sf, err := ToStoreFilter(models.LeadFilter{TransactionType: "all", Asesor: "all"}, testNow)
	require.NoError(t, err)
	assert.Nil(t, sf.TransactionType)
	assert.Nil(t, sf.Asesor)
	assert.True(t, sf.Now.Equal(testNow))

	sf, err = ToStoreFilter(models.LeadFilter{TransactionType: "ventaRenta", Asesor: " ana ", ShowDormant: true}, testNow)
	require.NoError(t, err)
	require.NotNil(t, sf.TransactionType)
	assert.Equal(t, models.TransactionVentaRenta, *sf.TransactionType)
	assert.Equal(t, "ana", *sf.Asesor)
	assert.True(t, sf.ShowDormant)
}

func TestApplySearch(t *testing.T) {
	leads := []models.Lead{
		{ID: "1", NombreCompleto: "María López"},
		{ID: "2", Telefono: "5512345678"},
		{ID: "3", OrigenURL: "https://inmuebles.example.com/123"},
		{ID: "4", Notas: "Quiere ver el depa el sábado"},
	}
	assert.Len(t, ApplySearch(leads, ""), 4)
	assert.Equal(t, "1", ApplySearch(leads, "MARÍA")[0].ID)
	assert.Equal(t, "2", ApplySearch(leads, "1234")[0].ID)
	assert.Equal(t, "3", ApplySearch(leads, "inmuebles")[0].ID)
	assert.Equal(t, "4", ApplySearch(leads, "sábado")[0].ID)
	assert.Empty(t, ApplySearch(leads, "nadie"))
}
