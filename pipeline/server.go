// Package pipeline provides a small asynchronous asset server on top of the
// source registry. Loads run on their own goroutines and hand the caller a
// Handle to await, so a slow disk fallback never stalls the caller.
package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/assetpack/internal/telemetry"
	"github.com/samdwyer/assetpack/source"
)

// Server resolves asset references through a source registry and performs
// asynchronous loads. It is safe for concurrent use.
type Server struct {
	registry *source.Registry
	tracer   trace.Tracer
	maxTries uint
}

// Option configures a Server.
type Option func(*Server)

// WithRetry retries transient read errors up to maxTries attempts with
// exponential backoff. Missing assets and invalid paths are never retried.
func WithRetry(maxTries uint) Option {
	return func(s *Server) {
		s.maxTries = maxTries
	}
}

// NewServer creates a server over the given registry.
func NewServer(registry *source.Registry, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		tracer:   telemetry.Tracer("pipeline"),
		maxTries: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load starts an asynchronous load of ref and returns its handle. The
// caller owns the handle; discarding it abandons the result without any
// cleanup, the loaded bytes are dropped when the handle is collected.
func (s *Server) Load(ctx context.Context, ref string) *Handle {
	h := &Handle{
		id:   uuid.New(),
		ref:  ref,
		done: make(chan struct{}),
	}
	go s.load(ctx, h)
	return h
}

func (s *Server) load(ctx context.Context, h *Handle) {
	defer close(h.done)

	ctx, span := s.tracer.Start(ctx, "asset.load")
	defer span.End()
	span.SetAttributes(attribute.String("asset.ref", h.ref))

	src, rel, err := s.registry.Resolve(h.ref)
	if err != nil {
		h.err = err
		span.RecordError(err)
		return
	}

	h.data, h.err = s.read(ctx, src, rel)
	if h.err != nil {
		span.RecordError(h.err)
		return
	}
	span.SetAttributes(attribute.Int("asset.bytes", len(h.data)))
}

// read drains one asset from src, retrying transient errors when the server
// is configured for it.
func (s *Server) read(ctx context.Context, src source.Source, rel string) ([]byte, error) {
	operation := func() ([]byte, error) {
		r, err := src.Read(ctx, rel)
		if err != nil {
			if errors.Is(err, source.ErrNotFound) || errors.Is(err, source.ErrInvalidPath) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return data, nil
	}

	if s.maxTries <= 1 {
		data, err := operation()
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return nil, permanent.Unwrap()
		}
		return data, err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(s.maxTries),
		backoff.WithMaxElapsedTime(30*time.Second),
	)
}

// Handle is one in-flight asynchronous load. The zero value is not usable,
// handles come from Server.Load.
type Handle struct {
	id   uuid.UUID
	ref  string
	done chan struct{}
	data []byte
	err  error
}

// ID returns the unique identity of this load.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// Ref returns the asset reference this handle was created for.
func (h *Handle) Ref() string {
	return h.ref
}

// Done returns a channel closed when the load has finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Await blocks until the load finishes or ctx is cancelled, then returns the
// loaded bytes or the load error.
func (h *Handle) Await(ctx context.Context) ([]byte, error) {
	select {
	case <-h.done:
		return h.data, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
