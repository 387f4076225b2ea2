// Package repositories implements the domain repository ports on top of the
// PostgreSQL connection pool.
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

const precedentColumns = `case_id, case_name, court, jurisdiction, decision_date,
	legal_issues, holding, legal_principles, legal_concepts,
	initial_authority, authority, strength, treatment,
	citations_received, citing_cases, cited_cases, overruling_cases,
	created_at, enriched_at`

// PrecedentRepository is the durable precedent.Repository implementation.
// Row order follows the seq column, so All returns insertion order and the
// ranking ties stay deterministic, matching the in-memory repository.
type PrecedentRepository struct {
	pool *pgxpool.Pool
}

// NewPrecedentRepository wires the repository around a connection pool.
func NewPrecedentRepository(pool *pgxpool.Pool) *PrecedentRepository {
	return &PrecedentRepository{pool: pool}
}

var _ precedent.Repository = (*PrecedentRepository)(nil)

// Save inserts p unless its case id already exists.  ON CONFLICT DO NOTHING
// gives the write-once semantics without a read-modify-write race.
func (r *PrecedentRepository) Save(ctx context.Context, p *precedent.Precedent) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	row, err := precedentRow(p)
	if err != nil {
		return false, err
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO precedents (`+precedentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (case_id) DO NOTHING`,
		row...)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "inserting precedent")
	}
	return tag.RowsAffected() > 0, nil
}

// Update replaces the stored record with the same case id.
func (r *PrecedentRepository) Update(ctx context.Context, p *precedent.Precedent) error {
	if err := p.Validate(); err != nil {
		return err
	}
	row, err := precedentRow(p)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE precedents SET
			case_name = $2, court = $3, jurisdiction = $4, decision_date = $5,
			legal_issues = $6, holding = $7, legal_principles = $8, legal_concepts = $9,
			initial_authority = $10, authority = $11, strength = $12, treatment = $13,
			citations_received = $14, citing_cases = $15, cited_cases = $16,
			overruling_cases = $17, created_at = $18, enriched_at = $19
		WHERE case_id = $1`,
		row...)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "updating precedent")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.ErrCodePrecedentNotFound, "precedent %s not found", p.CaseID)
	}
	return nil
}

// Get returns the precedent with the given case id.
func (r *PrecedentRepository) Get(ctx context.Context, id ptypes.CaseID) (*precedent.Precedent, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+precedentColumns+` FROM precedents WHERE case_id = $1`, string(id))
	p, err := scanPrecedent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.ErrCodePrecedentNotFound, "precedent %s not found", id)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "reading precedent")
	}
	return p, nil
}

// All returns every stored precedent in insertion order.
func (r *PrecedentRepository) All(ctx context.Context) ([]*precedent.Precedent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+precedentColumns+` FROM precedents ORDER BY seq`)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "listing precedents")
	}
	defer rows.Close()

	var out []*precedent.Precedent
	for rows.Next() {
		p, err := scanPrecedent(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "scanning precedent")
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "iterating precedents")
	}
	return out, nil
}

// Count returns the number of stored precedents.
func (r *PrecedentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM precedents`).Scan(&n); err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "counting precedents")
	}
	return n, nil
}

// precedentRow renders p as positional arguments matching precedentColumns.
func precedentRow(p *precedent.Precedent) ([]interface{}, error) {
	issues, err := json.Marshal(orEmpty(p.LegalIssues))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "marshaling legal issues")
	}
	principles, err := json.Marshal(orEmpty(p.LegalPrinciples))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "marshaling legal principles")
	}
	concepts, err := json.Marshal(orEmpty(p.LegalConcepts))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "marshaling legal concepts")
	}
	citing, err := json.Marshal(orEmptyIDs(p.CitingCases))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "marshaling citing cases")
	}
	cited, err := json.Marshal(orEmpty(p.CitedCases))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "marshaling cited cases")
	}
	overruling, err := json.Marshal(orEmpty(p.OverrulingCases))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "marshaling overruling cases")
	}

	return []interface{}{
		string(p.CaseID), p.CaseName, p.Court, string(p.Jurisdiction), p.DecisionDate,
		issues, p.Holding, principles, concepts,
		p.InitialAuthority, p.Authority, string(p.Strength), string(p.Treatment),
		p.CitationsReceived, citing, cited, overruling,
		p.CreatedAt, p.EnrichedAt,
	}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPrecedent(row rowScanner) (*precedent.Precedent, error) {
	var (
		p            precedent.Precedent
		caseID       string
		jurisdiction string
		strength     string
		treatment    string
		decisionDate *time.Time
		enrichedAt   *time.Time
		issues       []byte
		principles   []byte
		concepts     []byte
		citing       []byte
		cited        []byte
		overruling   []byte
	)
	if err := row.Scan(
		&caseID, &p.CaseName, &p.Court, &jurisdiction, &decisionDate,
		&issues, &p.Holding, &principles, &concepts,
		&p.InitialAuthority, &p.Authority, &strength, &treatment,
		&p.CitationsReceived, &citing, &cited, &overruling,
		&p.CreatedAt, &enrichedAt,
	); err != nil {
		return nil, err
	}

	p.CaseID = ptypes.CaseID(caseID)
	p.Jurisdiction = ptypes.Jurisdiction(jurisdiction)
	p.Strength = ptypes.Strength(strength)
	p.Treatment = ptypes.Type(treatment)
	p.DecisionDate = decisionDate
	p.EnrichedAt = enrichedAt

	jsonFields := []struct {
		raw  []byte
		dest interface{}
	}{
		{issues, &p.LegalIssues},
		{principles, &p.LegalPrinciples},
		{concepts, &p.LegalConcepts},
		{citing, &p.CitingCases},
		{cited, &p.CitedCases},
		{overruling, &p.OverrulingCases},
	}
	for _, f := range jsonFields {
		if err := json.Unmarshal(f.raw, f.dest); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "unmarshaling precedent fields")
		}
	}
	return &p, nil
}

func orEmpty(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

func orEmptyIDs(xs []ptypes.CaseID) []ptypes.CaseID {
	if xs == nil {
		return []ptypes.CaseID{}
	}
	return xs
}
