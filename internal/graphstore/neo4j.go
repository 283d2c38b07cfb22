// Package graphstore implements the graph query service against the Neo4j
// knowledge graph: breadth-capped export, depth-bounded taxpayer subgraphs,
// and whole-graph statistics.
package graphstore

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/gstlens/gst-graph-backend/config"
)

// Runner abstracts Cypher execution so the store can be tested without a
// database.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// Neo4jRunner executes queries through the official driver, buffering each
// result eagerly.
type Neo4jRunner struct {
	driver   neo4j.DriverWithContext
	database string
}

// OpenNeo4j creates a driver and verifies connectivity within a bounded
// timeout.
func OpenNeo4j(ctx context.Context, cfg config.Neo4jConfig) (*Neo4jRunner, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	vctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(vctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j connectivity: %w", err)
	}

	return &Neo4jRunner{driver: driver, database: cfg.Database}, nil
}

func (r *Neo4jRunner) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		r.driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(r.database),
	)
	if err != nil {
		return nil, fmt.Errorf("neo4j query: %w", err)
	}
	return result, nil
}

// Ping reports whether the database is reachable.
func (r *Neo4jRunner) Ping(ctx context.Context) error {
	return r.driver.VerifyConnectivity(ctx)
}

func (r *Neo4jRunner) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}
