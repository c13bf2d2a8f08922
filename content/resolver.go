package content

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
)

// Resolver loads content references. It holds no mutable state, so a single
// Resolver can be shared by concurrent requests.
type Resolver struct {
	client *http.Client
	logger *log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces http.DefaultClient for remote fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		if c != nil {
			r.client = c
		}
	}
}

// WithLogger sets where load failures are reported.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver returns a Resolver using http.DefaultClient and the standard logger.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		client: http.DefaultClient,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the full content behind ref, or Absent if it could not be
// loaded for any reason. Nothing is cached between calls.
func (r *Resolver) Resolve(ctx context.Context, ref Reference) Content {
	switch ref := ref.(type) {
	case LocalPath:
		return r.readLocal(ref)
	case RemoteURL:
		return r.fetchRemote(ctx, ref)
	default:
		r.logger.Printf("content: unsupported reference %v", ref)
		return Absent()
	}
}

// Load parses raw and resolves it.
func (r *Resolver) Load(ctx context.Context, raw string) Content {
	return r.Resolve(ctx, ParseReference(raw))
}

func (r *Resolver) readLocal(path LocalPath) Content {
	data, err := os.ReadFile(string(path))
	if err != nil {
		r.logger.Printf("content: read %q: %v", path, err)
		return Absent()
	}
	return Present(data)
}

func (r *Resolver) fetchRemote(ctx context.Context, url RemoteURL) Content {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, string(url), nil)
	if err != nil {
		r.logger.Printf("content: build request for %q: %v", url, err)
		return Absent()
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Printf("content: fetch %q: %v", url, err)
		return Absent()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		r.logger.Printf("content: fetch %q: status %d", url, resp.StatusCode)
		return Absent()
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		r.logger.Printf("content: read body of %q: %v", url, err)
		return Absent()
	}
	return Present(data)
}
