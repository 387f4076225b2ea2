package precedent

import (
	"context"
	"sync"

	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

// memoryRepository is a mutex-guarded in-memory Repository.  It preserves
// insertion order so that downstream ranking stays deterministic across runs
// on the same corpus.
type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[ptypes.CaseID]*Precedent
	order []ptypes.CaseID
}

// NewMemoryRepository returns an empty in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID: make(map[ptypes.CaseID]*Precedent),
	}
}

func (r *memoryRepository) Save(_ context.Context, p *Precedent) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.CaseID]; ok {
		return false, nil
	}
	r.byID[p.CaseID] = p.Clone()
	r.order = append(r.order, p.CaseID)
	return true, nil
}

func (r *memoryRepository) Update(_ context.Context, p *Precedent) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.CaseID]; !ok {
		return apperrors.Newf(apperrors.ErrCodePrecedentNotFound, "precedent %s not found", p.CaseID)
	}
	r.byID[p.CaseID] = p.Clone()
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id ptypes.CaseID) (*Precedent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrCodePrecedentNotFound, "precedent %s not found", id)
	}
	return p.Clone(), nil
}

func (r *memoryRepository) All(_ context.Context) ([]*Precedent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Precedent, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}

func (r *memoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.order)), nil
}
