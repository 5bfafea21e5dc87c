// internal/models/lead.go
package models

import "time"

// LeadStatus is a pipeline stage of a negocio.
type LeadStatus string

const (
	StatusForm             LeadStatus = "form"
	StatusPropuesta        LeadStatus = "propuesta"
	StatusEvaluacion       LeadStatus = "evaluación"
	StatusComercializacion LeadStatus = "comercialización"
	StatusCongeladora      LeadStatus = "congeladora"
	StatusCerrada          LeadStatus = "cerrada"
	StatusCancelada        LeadStatus = "cancelada"
)

// PipelineStatuses is the fixed column order of the board.
var PipelineStatuses = []LeadStatus{
	StatusForm,
	StatusPropuesta,
	StatusEvaluacion,
	StatusComercializacion,
	StatusCongeladora,
	StatusCerrada,
	StatusCancelada,
}

func (s LeadStatus) Valid() bool {
	for _, st := range PipelineStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Terminal reports whether the stage ends the pipeline.
func (s LeadStatus) Terminal() bool {
	return s == StatusCerrada || s == StatusCancelada
}

type TransactionType string

const (
	TransactionRenta      TransactionType = "renta"
	TransactionVenta      TransactionType = "venta"
	TransactionVentaRenta TransactionType = "ventaRenta"
)

var TransactionTypes = []TransactionType{TransactionRenta, TransactionVenta, TransactionVentaRenta}

func (t TransactionType) Valid() bool {
	return t == TransactionRenta || t == TransactionVenta || t == TransactionVentaRenta
}

// DefaultPorcentajePizo is the platform share applied when a lead has none.
const DefaultPorcentajePizo = 50.0

// Lead is a negocio moving through the sales pipeline.
type Lead struct {
	ID              string          `json:"id"`
	PropertyType    string          `json:"propertyType"`
	TransactionType TransactionType `json:"transactionType"`
	CondoName       string          `json:"condoName"`
	Price           float64         `json:"price"`
	Comision        *float64        `json:"comision,omitempty"`
	PorcentajePizo  *float64        `json:"porcentajePizo,omitempty"`

	Estatus      LeadStatus `json:"estatus"`
	Dormido      bool       `json:"dormido"`
	DormidoHasta *time.Time `json:"dormidoHasta,omitempty"`

	NombreCompleto string `json:"nombreCompleto"`
	Telefono       string `json:"telefono"`
	Correo         string `json:"correo"`

	OrigenTexto  string `json:"origenTexto"`
	OrigenURL    string `json:"origenUrl"`
	Asesor       string `json:"asesor"`
	AsesorAliado string `json:"asesorAliado,omitempty"`
	PromotorID   string `json:"promotorId,omitempty"`

	FechaCreacion time.Time  `json:"fechaCreacion"`
	FechaCierre   *time.Time `json:"fechaCierre,omitempty"`

	Notas   string `json:"notas"`
	Calidad int    `json:"calidad"`
}

// ComisionOrZero returns the commission percent, 0 when unset.
func (l *Lead) ComisionOrZero() float64 {
	if l.Comision == nil {
		return 0
	}
	return *l.Comision
}

// PorcentajePizoOrDefault returns the platform share, 50 when unset.
func (l *Lead) PorcentajePizoOrDefault() float64 {
	if l.PorcentajePizo == nil {
		return DefaultPorcentajePizo
	}
	return *l.PorcentajePizo
}

// IsEffectivelyDormant treats an elapsed snooze as awake even if the stored flag
// was never flipped back.
func (l *Lead) IsEffectivelyDormant(now time.Time) bool {
	if !l.Dormido {
		return false
	}
	if l.DormidoHasta == nil {
		return true
	}
	return l.DormidoHasta.After(now)
}

// LeadPatch is a partial update. Nil fields are left untouched.
type LeadPatch struct {
	PropertyType    *string          `json:"propertyType,omitempty"`
	TransactionType *TransactionType `json:"transactionType,omitempty"`
	CondoName       *string          `json:"condoName,omitempty"`
	Price           *float64         `json:"price,omitempty"`
	Comision        *float64         `json:"comision,omitempty"`
	PorcentajePizo  *float64         `json:"porcentajePizo,omitempty"`
	Estatus         *LeadStatus      `json:"estatus,omitempty"`
	Dormido         *bool            `json:"dormido,omitempty"`
	DormidoHasta    *time.Time       `json:"dormidoHasta,omitempty"`
	NombreCompleto  *string          `json:"nombreCompleto,omitempty"`
	Telefono        *string          `json:"telefono,omitempty"`
	Correo          *string          `json:"correo,omitempty"`
	OrigenTexto     *string          `json:"origenTexto,omitempty"`
	OrigenURL       *string          `json:"origenUrl,omitempty"`
	Asesor          *string          `json:"asesor,omitempty"`
	AsesorAliado    *string          `json:"asesorAliado,omitempty"`
	PromotorID      *string          `json:"promotorId,omitempty"`
	FechaCierre     *time.Time       `json:"fechaCierre,omitempty"`
	Notas           *string          `json:"notas,omitempty"`
	Calidad         *int             `json:"calidad,omitempty"`

	// set the nullable columns back to null
	ClearDormidoHasta bool `json:"-"`
	ClearFechaCierre  bool `json:"-"`
}

// Apply writes the patch onto l. Stores without partial-update support use it
// after loading the current record.
func (p LeadPatch) Apply(l *Lead) {
	if p.PropertyType != nil {
		l.PropertyType = *p.PropertyType
	}
	if p.TransactionType != nil {
		l.TransactionType = *p.TransactionType
	}
	if p.CondoName != nil {
		l.CondoName = *p.CondoName
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Comision != nil {
		v := *p.Comision
		l.Comision = &v
	}
	if p.PorcentajePizo != nil {
		v := *p.PorcentajePizo
		l.PorcentajePizo = &v
	}
	if p.Estatus != nil {
		l.Estatus = *p.Estatus
	}
	if p.Dormido != nil {
		l.Dormido = *p.Dormido
	}
	if p.DormidoHasta != nil {
		v := *p.DormidoHasta
		l.DormidoHasta = &v
	}
	if p.ClearDormidoHasta {
		l.DormidoHasta = nil
	}
	if p.NombreCompleto != nil {
		l.NombreCompleto = *p.NombreCompleto
	}
	if p.Telefono != nil {
		l.Telefono = *p.Telefono
	}
	if p.Correo != nil {
		l.Correo = *p.Correo
	}
	if p.OrigenTexto != nil {
		l.OrigenTexto = *p.OrigenTexto
	}
	if p.OrigenURL != nil {
		l.OrigenURL = *p.OrigenURL
	}
	if p.Asesor != nil {
		l.Asesor = *p.Asesor
	}
	if p.AsesorAliado != nil {
		l.AsesorAliado = *p.AsesorAliado
	}
	if p.PromotorID != nil {
		l.PromotorID = *p.PromotorID
	}
	if p.FechaCierre != nil {
		v := *p.FechaCierre
		l.FechaCierre = &v
	}
	if p.ClearFechaCierre {
		l.FechaCierre = nil
	}
	if p.Notas != nil {
		l.Notas = *p.Notas
	}
	if p.Calidad != nil {
		l.Calidad = *p.Calidad
	}
}

// Empty reports whether the patch changes nothing.
func (p LeadPatch) Empty() bool {
	return p == LeadPatch{}
}

// TransactionFilterAll disables the transaction-type filter.
const TransactionFilterAll = "all"

// LeadFilter is the client-visible filter state of the board.
type LeadFilter struct {
	TransactionType string `form:"transactionType" json:"transactionType"`
	ShowDormant     bool   `form:"showDormant" json:"showDormant"`
	Asesor          string `form:"asesor" json:"asesor"`
	SearchTerm      string `form:"search" json:"searchTerm"`
}

// StoreFilter is the subset of LeadFilter the store applies server-side.
type StoreFilter struct {
	TransactionType *TransactionType
	ShowDormant     bool
	Asesor          *string
	PromotorID      *string
	// Now decides effective dormancy when ShowDormant is false.
	Now time.Time
}
