package executor

import (
	"context"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/francois95140/unisql/engine/translator"
	"github.com/francois95140/unisql/mapping"
)

// Neo4jProvider creates a driver per session
type Neo4jProvider struct {
	uri      string
	user     string
	password string
	logger   *slog.Logger
}

// NewNeo4jProvider creates a provider for a bolt URI with basic auth.
// If logger is nil, a discard logger is used.
func NewNeo4jProvider(uri, user, password string, logger *slog.Logger) *Neo4jProvider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Neo4jProvider{uri: uri, user: user, password: password, logger: logger}
}

// Backend returns Neo4j
func (p *Neo4jProvider) Backend() mapping.Backend {
	return mapping.Neo4j
}

// Open creates the driver and verifies connectivity
func (p *Neo4jProvider) Open(ctx context.Context) (Session, error) {
	p.logger.Debug("connecting", slog.String("backend", mapping.Neo4j.String()))

	driver, err := neo4j.NewDriverWithContext(p.uri, neo4j.BasicAuth(p.user, p.password, ""))
	if err != nil {
		return nil, &ConnectionError{Backend: mapping.Neo4j, Err: err}
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, &ConnectionError{Backend: mapping.Neo4j, Err: err}
	}
	return &Neo4jSession{driver: driver, logger: p.logger}, nil
}

// Neo4jSession runs Cypher on one driver and closes it on Close
type Neo4jSession struct {
	driver neo4j.DriverWithContext
	logger *slog.Logger
}

// Run executes a *translator.GraphQuery in an auto-commit transaction
func (s *Neo4jSession) Run(ctx context.Context, q translator.Query) (*Result, error) {
	gq, ok := q.(*translator.GraphQuery)
	if !ok {
		return nil, wrongQuery(mapping.Neo4j, q)
	}

	s.logger.Debug("executing cypher", slog.String("cypher", gq.Cypher))

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer func() { _ = session.Close(ctx) }()

	res, err := session.Run(ctx, gq.Cypher, nil)
	if err != nil {
		return nil, &ExecutionError{Backend: mapping.Neo4j, Query: gq.Cypher, Err: err}
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return nil, &ExecutionError{Backend: mapping.Neo4j, Query: gq.Cypher, Err: err}
	}
	summary, err := res.Consume(ctx)
	if err != nil {
		return nil, &ExecutionError{Backend: mapping.Neo4j, Query: gq.Cypher, Err: err}
	}

	result := graphResult(summary.Counters())
	if gq.ReturnsRows && gq.Verb == "MATCH" {
		result.Records = make([]map[string]any, len(records))
		for i, r := range records {
			result.Records[i] = recordToMap(r.Keys, r.Values)
		}
		result.Message = Count(int64(len(records)), "node")
	}
	return result, nil
}

// Close closes the driver
func (s *Neo4jSession) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// graphResult summarizes write counters
func graphResult(c neo4j.Counters) *Result {
	switch {
	case c.NodesCreated() > 0:
		n := int64(c.NodesCreated())
		return &Result{RowsAffected: n, Message: Summary(n, "node", "created")}
	case c.NodesDeleted() > 0:
		n := int64(c.NodesDeleted())
		return &Result{RowsAffected: n, Message: Summary(n, "node", "deleted")}
	case c.PropertiesSet() > 0:
		n := int64(c.PropertiesSet())
		return &Result{RowsAffected: n, Message: Summary(n, "property", "set")}
	}
	return &Result{Message: "no changes"}
}

// recordToMap flattens a record. A returned node contributes its properties
// with the element id under _id.
func recordToMap(keys []string, values []any) map[string]any {
	row := make(map[string]any, len(keys))
	for i, key := range keys {
		switch v := values[i].(type) {
		case neo4j.Node:
			for k, p := range v.Props {
				row[k] = p
			}
			row["_id"] = v.ElementId
		default:
			row[key] = v
		}
	}
	return row
}

