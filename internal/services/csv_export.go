package services

import (
	"strconv"
	"strings"
	"time"

	"pizocrm/internal/models"
	"pizocrm/internal/utils"
)

const CSVContentType = "text/csv;charset=utf-8"

var csvHeader = []string{
	"ID",
	"Tipo de Propiedad",
	"Nombre Condominio",
	"Tipo de Transaccion",
	"Precio",
	"Comision %",
	"Asesor Aliado",
	"Porcentaje Pizo",
	"Estatus",
	"Fecha Creacion",
	"Fecha Cierre",
	"Dormido",
	"Dormido Hasta",
	"Notas",
	"Origen Texto",
	"Origen URL",
	"Asesor",
	"Nombre Cliente",
	"Telefono Cliente",
	"Correo Cliente",
}

// CSVHeader returns the 20 export columns in order.
func CSVHeader() []string {
	out := make([]string, len(csvHeader))
	copy(out, csvHeader)
	return out
}

// CSVExporter renders the lead collection as pure-ASCII CSV.
type CSVExporter struct {
	// Location for the date columns; UTC when nil.
	Location *time.Location
}

func NewCSVExporter(loc *time.Location) *CSVExporter {
	return &CSVExporter{Location: loc}
}

// Export is deterministic for a given input: same leads, same bytes.
func (e *CSVExporter) Export(leads []models.Lead) []byte {
	var b strings.Builder
	writeRow(&b, csvHeader)
	for i := range leads {
		b.WriteByte('\n')
		writeRow(&b, e.row(&leads[i]))
	}
	return []byte(b.String())
}

func (e *CSVExporter) row(l *models.Lead) []string {
	return []string{
		l.ID,
		l.PropertyType,
		l.CondoName,
		string(l.TransactionType),
		formatNumber(&l.Price),
		formatNumber(l.Comision),
		l.AsesorAliado,
		formatNumber(l.PorcentajePizo),
		string(l.Estatus),
		e.formatDate(&l.FechaCreacion),
		e.formatDate(l.FechaCierre),
		yesNo(l.Dormido),
		e.formatDate(l.DormidoHasta),
		l.Notas,
		l.OrigenTexto,
		l.OrigenURL,
		l.Asesor,
		l.NombreCompleto,
		l.Telefono,
		l.Correo,
	}
}

// ExportFileName is Leads_CRM_<YYYY-MM-DD>.csv.
func ExportFileName(now time.Time) string {
	return "Leads_CRM_" + now.Format("2006-01-02") + ".csv"
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EscapeCSVField(utils.StripAccents(f)))
	}
}

// EscapeCSVField quotes f only when it holds a comma, a quote or a newline.
func EscapeCSVField(f string) string {
	if !strings.ContainsAny(f, ",\"\n") {
		return f
	}
	return `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
}

func (e *CSVExporter) formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	loc := e.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2/1/2006")
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}
