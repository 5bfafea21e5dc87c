package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizocrm/internal/models"
)

func TestExportHeaderOnly(t *testing.T) {
	out := string(NewCSVExporter(time.UTC).Export(nil))
	assert.Equal(t, strings.Join(CSVHeader(), ","), out)
	assert.Len(t, CSVHeader(), 20)
}

func TestExportNormalizesAndQuotes(t *testing.T) {
	mx, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	created := time.Date(2026, 3, 5, 3, 0, 0, 0, time.UTC) // 4 March in Mexico City
	lead := models.Lead{
		ID:              "L1",
		PropertyType:    "Departamento",
		CondoName:       "Torre Álamo",
		TransactionType: models.TransactionVenta,
		Price:           1250000.5,
		Comision:        fp(5),
		Estatus:         models.StatusEvaluacion,
		FechaCreacion:   created,
		Dormido:         true,
		DormidoHasta:    tp(time.Date(2026, 12, 1, 18, 0, 0, 0, time.UTC)),
		Notas:           `dice "urgente"` + "\nllamar",
		Asesor:          "José Á.",
		NombreCompleto:  "Perez, Juan",
		Correo:          "juan@example.com",
	}

	out := string(NewCSVExporter(mx).Export([]models.Lead{lead}))
	lines := strings.SplitN(out, "\n", 2)
	require.Len(t, lines, 2)
	row := lines[1]

	assert.Contains(t, row, "Torre Alamo")
	assert.Contains(t, row, ",evaluacion,")
	assert.Contains(t, row, ",4/3/2026,,Si,1/12/2026,")
	assert.Contains(t, row, `"dice ""urgente""`+"\nllamar\"")
	assert.Contains(t, row, `,Jose A.,"Perez, Juan",,juan@example.com`)
	assert.Contains(t, row, ",1250000.5,5,,,")

	for _, r := range out {
		assert.LessOrEqual(t, r, rune(127))
	}
}

func TestExportIsDeterministic(t *testing.T) {
	leads := []models.Lead{
		{ID: "a", NombreCompleto: "Ana Núñez", Price: 10, FechaCreacion: testNow},
		{ID: "b", NombreCompleto: "Luis", Price: 20, FechaCreacion: testNow, FechaCierre: tp(testNow)},
	}
	e := NewCSVExporter(time.UTC)
	assert.Equal(t, e.Export(leads), e.Export(leads))
	assert.Equal(t, 3, strings.Count(string(e.Export(leads)), "\n")+1)
}

func TestEscapeCSVField(t *testing.T) {
	assert.Equal(t, "plain", EscapeCSVField("plain"))
	assert.Equal(t, " leading space", EscapeCSVField(" leading space"))
	assert.Equal(t, `"a,b"`, EscapeCSVField("a,b"))
	assert.Equal(t, `"say ""hi"""`, EscapeCSVField(`say "hi"`))
	assert.Equal(t, "\"two\nlines\"", EscapeCSVField("two\nlines"))
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "Leads_CRM_2026-05-10.csv", ExportFileName(testNow))
}
