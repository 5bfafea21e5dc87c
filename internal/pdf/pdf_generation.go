package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator is implemented by ReportGenerator; handlers depend on it so tests
// can swap it.
type Generator interface {
	PipelineReport(w io.Writer, data PipelineReportData) error
}

// ReportGenerator renders the pipeline report. With FontPath set it embeds a
// UTF-8 TTF; otherwise it falls back to Helvetica with the cp1252 translator,
// which covers Spanish.
type ReportGenerator struct {
	FontPath string
	fontName string
}

// ColumnRow is one board stage in the report table.
type ColumnRow struct {
	Status     string
	Count      int
	Value      string
	Commission string
}

type PipelineReportData struct {
	GeneratedAt time.Time
	Scope       string // "Todos los asesores" or the advisor name
	Total       int
	Active      int
	Dormant     int
	TotalValue  string
	Commission  string
	ByType      []KV
	Columns     []ColumnRow
}

type KV struct {
	Key   string
	Value string
}

func NewReportGenerator(fontPath string) *ReportGenerator {
	return &ReportGenerator{FontPath: fontPath, fontName: "DejaVu"}
}

func (g *ReportGenerator) PipelineReport(w io.Writer, data PipelineReportData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reporte de pipeline", true)
	pdf.SetAuthor("Pizo CRM", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	font, tr := g.setupFont(pdf)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(font, "", 9)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(font, "B", 18)
	pdf.CellFormat(0, 10, tr("Reporte de pipeline"), "", 1, "C", false, 0, "")
	pdf.SetFont(font, "", 11)
	sub := fmt.Sprintf("%s · %s", data.Scope, data.GeneratedAt.Format("02/01/2006 15:04"))
	pdf.CellFormat(0, 7, tr(sub), "", 1, "C", false, 0, "")
	hr(pdf)

	sectionTitle(pdf, font, tr("Resumen"))
	kvLine(pdf, font, tr("Negocios"), fmt.Sprintf("%d", data.Total))
	kvLine(pdf, font, tr("Activos"), fmt.Sprintf("%d", data.Active))
	kvLine(pdf, font, tr("Dormidos"), fmt.Sprintf("%d", data.Dormant))
	kvLine(pdf, font, tr("Valor total"), tr(data.TotalValue))
	kvLine(pdf, font, tr("Comisión potencial"), tr(data.Commission))
	for _, kv := range data.ByType {
		kvLine(pdf, font, tr(kv.Key), tr(kv.Value))
	}
	pdf.Ln(2)
	hr(pdf)

	sectionTitle(pdf, font, tr("Por etapa"))
	widths := []float64{50, 25, 50, 45}
	header := []string{"Etapa", "Negocios", "Valor", "Comisión"}
	pdf.SetFont(font, "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(font, "", 10)
	for _, c := range data.Columns {
		pdf.CellFormat(widths[0], 7, tr(c.Status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", c.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, tr(c.Value), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, tr(c.Commission), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pipeline report: %w", err)
	}
	return pdf.Output(w)
}

func (g *ReportGenerator) setupFont(pdf *gofpdf.Fpdf) (string, func(string) string) {
	if g.FontPath != "" {
		pdf.AddUTF8Font(g.fontName, "", g.FontPath)
		pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
		return g.fontName, func(s string) string { return s }
	}
	return "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
}

func sectionTitle(pdf *gofpdf.Fpdf, font, s string) {
	pdf.SetFont(font, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(font, "", 11)
}

func kvLine(pdf *gofpdf.Fpdf, font, key, val string) {
	pdf.SetFont(font, "B", 11)
	pdf.CellFormat(55, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(font, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
