package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineReportWritesPDF(t *testing.T) {
	var buf bytes.Buffer
	err := NewReportGenerator("").PipelineReport(&buf, PipelineReportData{
		GeneratedAt: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC),
		Scope:       "Todos los asesores",
		Total:       3,
		Active:      2,
		Dormant:     1,
		TotalValue:  "$1,520,000",
		Commission:  "$27,000",
		ByType:      []KV{{Key: "Venta", Value: "2"}},
		Columns: []ColumnRow{
			{Status: "propuesta", Count: 2, Value: "$1,500,000", Commission: "$25,000"},
			{Status: "comercialización", Count: 1, Value: "$20,000", Commission: "$2,000"},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}
