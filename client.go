package unisql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/francois95140/unisql/engine/executor"
	"github.com/francois95140/unisql/engine/translator"
	"github.com/francois95140/unisql/engine/validator"
	"github.com/francois95140/unisql/mapping"
)

// ============================================
// CLIENT STRUCT
// ============================================

// Client dispatches commands to backends. It holds no per-command state, so
// concurrent calls are safe.
type Client struct {
	providers map[mapping.Backend]executor.Provider
	validate  bool
	logger    *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithProvider registers the connection provider of its backend, replacing
// any earlier one
func WithProvider(p executor.Provider) Option {
	return func(c *Client) {
		c.providers[p.Backend()] = p
	}
}

// WithValidation checks generated queries against the backend grammar
// before they are sent
func WithValidation(enabled bool) Option {
	return func(c *Client) {
		c.validate = enabled
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// ============================================
// CONSTRUCTORS
// ============================================

// New creates a client. Without providers the client can still Translate.
func New(opts ...Option) *Client {
	c := &Client{
		providers: make(map[mapping.Backend]executor.Provider),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ============================================
// QUERY METHODS
// ============================================

// Translate parses raw and translates it for the backend named by
// backendTag, without connecting anywhere
func (c *Client) Translate(backendTag, raw string) (translator.Query, error) {
	backend, err := mapping.ResolveBackend(backendTag)
	if err != nil {
		return nil, wrap("", err)
	}

	q, err := c.translate(backend, raw)
	if err != nil {
		return nil, wrap(backend, err)
	}
	return q, nil
}

// Execute parses, translates and runs one command. A session is opened for
// the command and closed before returning.
func (c *Client) Execute(ctx context.Context, backendTag, raw string) (*executor.Result, error) {
	backend, err := mapping.ResolveBackend(backendTag)
	if err != nil {
		c.logger.Warn("command failed", slog.String("backend", backendTag), slog.String("error", err.Error()))
		return nil, wrap("", err)
	}

	result, err := c.execute(ctx, backend, raw)
	if err != nil {
		c.logger.Warn("command failed", slog.String("backend", backend.String()), slog.String("error", err.Error()))
		return nil, wrap(backend, err)
	}
	return result, nil
}

func (c *Client) translate(backend mapping.Backend, raw string) (translator.Query, error) {
	stmt, err := parse(raw, c.logger)
	if err != nil {
		return nil, err
	}

	q, err := translator.Translate(stmt, backend)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("generated query",
		slog.String("backend", backend.String()),
		slog.String("query", q.String()))

	if c.validate {
		if err := validator.Validate(q); err != nil {
			return nil, err
		}
	}
	return q, nil
}

func (c *Client) execute(ctx context.Context, backend mapping.Backend, raw string) (*executor.Result, error) {
	q, err := c.translate(backend, raw)
	if err != nil {
		return nil, err
	}

	provider, ok := c.providers[backend]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoProvider, backend)
	}

	session, err := provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := session.Close(ctx); err != nil {
			c.logger.Warn("closing session", slog.String("backend", backend.String()), slog.String("error", err.Error()))
		}
	}()

	result, err := session.Run(ctx, q)
	if err != nil {
		return nil, err
	}

	c.logger.Info("executed",
		slog.String("backend", backend.String()),
		slog.String("operation", q.Operation()))
	return result, nil
}
