package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pizocrm/internal/models"
)

const leadColumns = `id, property_type, transaction_type, condo_name, price, comision, porcentaje_pizo,
	estatus, dormido, dormido_hasta, nombre_completo, telefono, correo, origen_texto, origen_url,
	asesor, asesor_aliado, promotor_id, fecha_creacion, fecha_cierre, notas, calidad`

// LeadRepository is the postgres lead store.
type LeadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

const leadsSchema = `
CREATE TABLE IF NOT EXISTS leads (
	id               TEXT PRIMARY KEY,
	property_type    TEXT NOT NULL DEFAULT '',
	transaction_type TEXT NOT NULL DEFAULT '',
	condo_name       TEXT NOT NULL DEFAULT '',
	price            DOUBLE PRECISION NOT NULL DEFAULT 0,
	comision         DOUBLE PRECISION,
	porcentaje_pizo  DOUBLE PRECISION,
	estatus          TEXT NOT NULL,
	dormido          BOOLEAN NOT NULL DEFAULT FALSE,
	dormido_hasta    TIMESTAMPTZ,
	nombre_completo  TEXT NOT NULL DEFAULT '',
	telefono         TEXT NOT NULL DEFAULT '',
	correo           TEXT NOT NULL DEFAULT '',
	origen_texto     TEXT NOT NULL DEFAULT '',
	origen_url       TEXT NOT NULL DEFAULT '',
	asesor           TEXT NOT NULL DEFAULT '',
	asesor_aliado    TEXT NOT NULL DEFAULT '',
	promotor_id      TEXT NOT NULL DEFAULT '',
	fecha_creacion   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	fecha_cierre     TIMESTAMPTZ,
	notas            TEXT NOT NULL DEFAULT '',
	calidad          SMALLINT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_leads_asesor ON leads (asesor);
CREATE INDEX IF NOT EXISTS idx_leads_dormant ON leads (dormido, dormido_hasta);
`

// EnsureSchema creates the tables this store needs.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, leadsSchema); err != nil {
		return fmt.Errorf("leads schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, promotersSchema); err != nil {
		return fmt.Errorf("promoters schema: %w", err)
	}
	return nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) (string, error) {
	id := uuid.NewString()
	query := `INSERT INTO leads (` + leadColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`
	_, err := r.db.ExecContext(ctx, query,
		id, lead.PropertyType, string(lead.TransactionType), lead.CondoName, lead.Price,
		nullFloat(lead.Comision), nullFloat(lead.PorcentajePizo),
		string(lead.Estatus), lead.Dormido, nullTime(lead.DormidoHasta),
		lead.NombreCompleto, lead.Telefono, lead.Correo, lead.OrigenTexto, lead.OrigenURL,
		lead.Asesor, lead.AsesorAliado, lead.PromotorID,
		lead.FechaCreacion, nullTime(lead.FechaCierre), lead.Notas, lead.Calidad,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetByID returns nil, nil when the lead does not exist.
func (r *LeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id=$1`
	lead, err := scanLead(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context, f models.StoreFilter) ([]models.Lead, error) {
	where, args := listWhere(f)
	query := `SELECT ` + leadColumns + ` FROM leads` + where + ` ORDER BY fecha_creacion DESC, id`
	return r.query(ctx, query, args...)
}

func (r *LeadRepository) ListExpiredDormant(ctx context.Context, now time.Time) ([]models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE dormido = TRUE AND dormido_hasta IS NOT NULL AND dormido_hasta <= $1
		ORDER BY dormido_hasta`
	return r.query(ctx, query, now)
}

func (r *LeadRepository) Update(ctx context.Context, id string, patch models.LeadPatch) error {
	sets, args := patchColumns(patch)
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE leads SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *LeadRepository) WakeIfExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	const query = `UPDATE leads SET dormido=FALSE, dormido_hasta=NULL
		WHERE id=$1 AND dormido = TRUE AND dormido_hasta IS NOT NULL AND dormido_hasta <= $2`
	res, err := r.db.ExecContext(ctx, query, id, now)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM leads WHERE id=$1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *LeadRepository) query(ctx context.Context, query string, args ...any) ([]models.Lead, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// listWhere renders the store filter as a WHERE clause with positional args.
func listWhere(f models.StoreFilter) (string, []any) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.TransactionType != nil {
		conds = append(conds, "transaction_type = "+arg(string(*f.TransactionType)))
	}
	if f.Asesor != nil {
		p := arg(*f.Asesor)
		conds = append(conds, fmt.Sprintf("(asesor = %s OR asesor_aliado = %s)", p, p))
	}
	if f.PromotorID != nil {
		conds = append(conds, "promotor_id = "+arg(*f.PromotorID))
	}
	if !f.ShowDormant {
		now := f.Now
		if now.IsZero() {
			now = time.Now()
		}
		conds = append(conds, fmt.Sprintf("(dormido = FALSE OR (dormido_hasta IS NOT NULL AND dormido_hasta <= %s))", arg(now)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// patchColumns turns the non-nil patch fields into SET fragments.
func patchColumns(p models.LeadPatch) ([]string, []any) {
	var sets []string
	var args []any
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}

	if p.PropertyType != nil {
		set("property_type", *p.PropertyType)
	}
	if p.TransactionType != nil {
		set("transaction_type", string(*p.TransactionType))
	}
	if p.CondoName != nil {
		set("condo_name", *p.CondoName)
	}
	if p.Price != nil {
		set("price", *p.Price)
	}
	if p.Comision != nil {
		set("comision", *p.Comision)
	}
	if p.PorcentajePizo != nil {
		set("porcentaje_pizo", *p.PorcentajePizo)
	}
	if p.Estatus != nil {
		set("estatus", string(*p.Estatus))
	}
	if p.Dormido != nil {
		set("dormido", *p.Dormido)
	}
	if p.ClearDormidoHasta {
		sets = append(sets, "dormido_hasta=NULL")
	} else if p.DormidoHasta != nil {
		set("dormido_hasta", *p.DormidoHasta)
	}
	if p.NombreCompleto != nil {
		set("nombre_completo", *p.NombreCompleto)
	}
	if p.Telefono != nil {
		set("telefono", *p.Telefono)
	}
	if p.Correo != nil {
		set("correo", *p.Correo)
	}
	if p.OrigenTexto != nil {
		set("origen_texto", *p.OrigenTexto)
	}
	if p.OrigenURL != nil {
		set("origen_url", *p.OrigenURL)
	}
	if p.Asesor != nil {
		set("asesor", *p.Asesor)
	}
	if p.AsesorAliado != nil {
		set("asesor_aliado", *p.AsesorAliado)
	}
	if p.PromotorID != nil {
		set("promotor_id", *p.PromotorID)
	}
	if p.ClearFechaCierre {
		sets = append(sets, "fecha_cierre=NULL")
	} else if p.FechaCierre != nil {
		set("fecha_cierre", *p.FechaCierre)
	}
	if p.Notas != nil {
		set("notas", *p.Notas)
	}
	if p.Calidad != nil {
		set("calidad", *p.Calidad)
	}
	return sets, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*models.Lead, error) {
	var (
		l                         models.Lead
		tt, estatus               string
		comision, pizo            sql.NullFloat64
		dormidoHasta, fechaCierre sql.NullTime
	)
	err := row.Scan(
		&l.ID, &l.PropertyType, &tt, &l.CondoName, &l.Price, &comision, &pizo,
		&estatus, &l.Dormido, &dormidoHasta, &l.NombreCompleto, &l.Telefono, &l.Correo,
		&l.OrigenTexto, &l.OrigenURL, &l.Asesor, &l.AsesorAliado, &l.PromotorID,
		&l.FechaCreacion, &fechaCierre, &l.Notas, &l.Calidad,
	)
	if err != nil {
		return nil, err
	}
	l.TransactionType = models.TransactionType(tt)
	l.Estatus = models.LeadStatus(estatus)
	if comision.Valid {
		l.Comision = &comision.Float64
	}
	if pizo.Valid {
		l.PorcentajePizo = &pizo.Float64
	}
	if dormidoHasta.Valid {
		l.DormidoHasta = &dormidoHasta.Time
	}
	if fechaCierre.Valid {
		l.FechaCierre = &fechaCierre.Time
	}
	return &l, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
