package services

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pizocrm/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Summary is the read-only KPI view of a lead collection.
type Summary struct {
	Total                  int                            `json:"total"`
	TotalValue             decimal.Decimal                `json:"totalValue"`
	ActiveCount            int                            `json:"activeCount"`
	DormantCount           int                            `json:"dormantCount"`
	CountByTransactionType map[models.TransactionType]int `json:"countByTransactionType"`
	StatusCounts           map[models.LeadStatus]int      `json:"statusCounts"`
	PotentialCommission    decimal.Decimal                `json:"potentialCommission"`

	TotalValueLabel          string `json:"totalValueLabel"`
	PotentialCommissionLabel string `json:"potentialCommissionLabel"`
}

// Summarize is pure; now only decides which snoozes have elapsed.
func Summarize(leads []models.Lead, now time.Time) Summary {
	s := Summary{
		Total:                  len(leads),
		TotalValue:             decimal.Zero,
		PotentialCommission:    decimal.Zero,
		CountByTransactionType: make(map[models.TransactionType]int, len(models.TransactionTypes)),
		StatusCounts:           make(map[models.LeadStatus]int, len(models.PipelineStatuses)),
	}
	for _, t := range models.TransactionTypes {
		s.CountByTransactionType[t] = 0
	}
	for _, st := range models.PipelineStatuses {
		s.StatusCounts[st] = 0
	}

	for i := range leads {
		l := &leads[i]
		s.TotalValue = s.TotalValue.Add(decimal.NewFromFloat(l.Price))
		if l.IsEffectivelyDormant(now) {
			s.DormantCount++
		} else {
			s.ActiveCount++
		}
		if l.TransactionType.Valid() {
			s.CountByTransactionType[l.TransactionType]++
		}
		s.StatusCounts[l.Estatus]++
		s.PotentialCommission = s.PotentialCommission.Add(PotentialCommission(l))
	}

	s.TotalValueLabel = FormatMXN(s.TotalValue)
	s.PotentialCommissionLabel = FormatMXN(s.PotentialCommission)
	return s
}

// PotentialCommission is the platform's projected take on one lead:
// price × comision% × porcentajePizo%. Cancelled leads project nothing.
func PotentialCommission(l *models.Lead) decimal.Decimal {
	if l.Estatus == models.StatusCancelada {
		return decimal.Zero
	}
	return decimal.NewFromFloat(l.Price).
		Mul(decimal.NewFromFloat(l.ComisionOrZero())).Div(hundred).
		Mul(decimal.NewFromFloat(l.PorcentajePizoOrDefault())).Div(hundred)
}

// CommissionBreakdown splits one lead's commission between platform and advisors.
type CommissionBreakdown struct {
	TotalCommission decimal.Decimal `json:"totalCommission"`
	PlatformShare   decimal.Decimal `json:"platformShare"`
	AdvisorShare    decimal.Decimal `json:"advisorShare"`
	AllyShare       decimal.Decimal `json:"allyShare"`
	PlatformPercent float64         `json:"platformPercent"`
}

// BreakdownCommission: with an asesorAliado the advisor share is split evenly.
func BreakdownCommission(l *models.Lead) CommissionBreakdown {
	total := decimal.NewFromFloat(l.Price).Mul(decimal.NewFromFloat(l.ComisionOrZero())).Div(hundred)
	platform := total.Mul(decimal.NewFromFloat(l.PorcentajePizoOrDefault())).Div(hundred)
	advisors := total.Sub(platform)

	b := CommissionBreakdown{
		TotalCommission: total.Round(2),
		PlatformShare:   platform.Round(2),
		AdvisorShare:    advisors.Round(2),
		AllyShare:       decimal.Zero,
		PlatformPercent: l.PorcentajePizoOrDefault(),
	}
	if l.AsesorAliado != "" {
		half := advisors.Div(decimal.NewFromInt(2)).Round(2)
		b.AllyShare = half
		b.AdvisorShare = advisors.Round(2).Sub(half)
	}
	return b
}

var mxPrinter = message.NewPrinter(language.MustParse("es-MX"))

// FormatMXN renders an amount as es-MX currency with no decimals, e.g. "$25,000".
func FormatMXN(amount decimal.Decimal) string {
	v := amount.Round(0).IntPart()
	if v < 0 {
		return "-$" + mxPrinter.Sprintf("%d", -v)
	}
	return "$" + mxPrinter.Sprintf("%d", v)
}
