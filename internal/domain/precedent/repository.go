package precedent

import (
	"context"

	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

// Repository is the storage port for precedents.
//
// Save is write-once per case id: a second Save with an existing case id is
// silently ignored and the stored record is left untouched.  Update replaces
// an existing record and is used by the enrichment pass only.  All reads
// return clones; callers may mutate results freely.
type Repository interface {
	// Save stores p unless a precedent with the same case id already exists.
	// It returns true when the record was stored.
	Save(ctx context.Context, p *Precedent) (bool, error)

	// Update replaces the stored record with the same case id.  It returns
	// ErrCodePrecedentNotFound when no such record exists.
	Update(ctx context.Context, p *Precedent) error

	// Get returns the precedent with the given case id, or
	// ErrCodePrecedentNotFound.
	Get(ctx context.Context, id ptypes.CaseID) (*Precedent, error)

	// All returns every stored precedent in insertion order.
	All(ctx context.Context) ([]*Precedent, error)

	// Count returns the number of stored precedents.
	Count(ctx context.Context) (int64, error)
}
