// Package neo4j implements the citation network provider on top of a Neo4j
// citation graph.  The driver is wrapped behind small interfaces so the
// provider's graph queries are testable without a live database.
package neo4j

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/lexatlas/precedent-intelligence/internal/config"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
)

// Result abstracts neo4j.ResultWithContext.
type Result interface {
	Next(ctx context.Context) bool
	Record() *neo4j.Record
	Err() error
}

// Transaction abstracts neo4j.ManagedTransaction.
type Transaction interface {
	Run(ctx context.Context, cypher string, params map[string]any) (Result, error)
}

// Session abstracts neo4j.SessionWithContext.
type Session interface {
	ExecuteRead(ctx context.Context, work func(Transaction) (any, error)) (any, error)
	Close(ctx context.Context) error
}

// Driver abstracts neo4j.DriverWithContext.
type Driver interface {
	NewSession(ctx context.Context) Session
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

type stdResult struct {
	res neo4j.ResultWithContext
}

func (r *stdResult) Next(ctx context.Context) bool { return r.res.Next(ctx) }
func (r *stdResult) Record() *neo4j.Record         { return r.res.Record() }
func (r *stdResult) Err() error                    { return r.res.Err() }

type stdTransaction struct {
	tx neo4j.ManagedTransaction
}

func (t *stdTransaction) Run(ctx context.Context, cypher string, params map[string]any) (Result, error) {
	res, err := t.tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return &stdResult{res: res}, nil
}

type stdSession struct {
	s neo4j.SessionWithContext
}

func (s *stdSession) ExecuteRead(ctx context.Context, work func(Transaction) (any, error)) (any, error) {
	return s.s.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return work(&stdTransaction{tx: tx})
	})
}

func (s *stdSession) Close(ctx context.Context) error { return s.s.Close(ctx) }

type stdDriver struct {
	driver   neo4j.DriverWithContext
	database string
}

func (d *stdDriver) NewSession(ctx context.Context) Session {
	return &stdSession{s: d.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: d.database,
	})}
}

func (d *stdDriver) VerifyConnectivity(ctx context.Context) error {
	return d.driver.VerifyConnectivity(ctx)
}

func (d *stdDriver) Close(ctx context.Context) error { return d.driver.Close(ctx) }

// NewDriver connects to Neo4j and verifies connectivity.
func NewDriver(ctx context.Context, cfg config.Neo4jConfig, logger logging.Logger) (Driver, error) {
	if logger == nil {
		logger = logging.Default()
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI,
		neo4j.BasicAuth(cfg.User, cfg.Password, ""),
		func(c *neo4j.Config) {
			if cfg.MaxConnectionPoolSize > 0 {
				c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
			}
			if cfg.ConnectionTimeout > 0 {
				c.ConnectionAcquisitionTimeout = cfg.ConnectionTimeout
			}
		})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNetworkUnavailable, "creating neo4j driver")
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNetworkUnavailable, "neo4j connectivity check failed")
	}

	logger.Info("connected to neo4j", logging.String("uri", cfg.URI))
	return &stdDriver{driver: driver, database: cfg.Database}, nil
}
