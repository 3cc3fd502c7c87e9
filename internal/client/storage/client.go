package storage

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophsync/internal/cryptox"
	"github.com/dmitrijs2005/gophsync/internal/logging"
)

// Client is the process-wide cloud storage client. Build one per session in
// the application's composition root and pass it to whoever needs it.
type Client struct {
	serviceAddress string
	transport      Transport
	algorithm      cryptox.Algorithm
	logger         logging.Logger

	mu   sync.RWMutex
	auth authState
	key  *cryptox.Key
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithAlgorithm selects the payload encryption algorithm.
func WithAlgorithm(alg cryptox.Algorithm) Option {
	return func(c *Client) { c.algorithm = alg }
}

// WithLogger sets the logger used by the client.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates an unauthenticated client without a key. The client
// takes ownership of transport and closes it in Close.
func NewClient(serviceAddress string, transport Transport, opts ...Option) *Client {
	c := &Client{
		serviceAddress: serviceAddress,
		transport:      transport,
		algorithm:      cryptox.DefaultAlgorithm,
		logger:         logging.Nop(),
		auth:           unauthenticated{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("module", "storage", "service", serviceAddress)
	return c
}

func (c *Client) ServiceAddress() string { return c.serviceAddress }

func (c *Client) Algorithm() cryptox.Algorithm { return c.algorithm }

// Ping checks that the service is reachable. It needs no credentials.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.transport.Ping(ctx); err != nil {
		return contextError(ctx, err)
	}
	return nil
}

// Close wipes the session secrets and releases the transport.
func (c *Client) Close() error {
	c.Logout()
	return c.transport.Close()
}
