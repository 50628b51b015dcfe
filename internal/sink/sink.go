package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/project-flotta/sys-metrics-sim/internal/host"
)

const (
	SchemeHTTP            = "http"
	SchemeHTTPS           = "https"
	SchemeRemoteWrite     = "prw+http"
	SchemeRemoteWriteTLS  = "prw+https"
	SchemeTSDB            = "tsdb"
	SchemeBolt            = "bolt"
	SchemeStdout          = "stdout"
	defaultRequestTimeout = 30 * time.Second
)

var ErrUnsupportedScheme = errors.New("unsupported sink URL scheme")

// Sink stores telemetry documents. Any error returned by Write is fatal to
// the simulation.
//go:generate mockgen -package=sink -destination=mock_sink.go . Sink
type Sink interface {
	// EnsureSchema creates the backing collection with the document mapping
	// if it does not exist yet.
	EnsureSchema(ctx context.Context) error
	Write(ctx context.Context, doc *host.Document) error
	Close() error
	String() string
}

type Options struct {
	// URL selects the sink by scheme, see New.
	URL string
	// Index is the collection name: ES index, bolt bucket or series label.
	Index string
	// AWSRegion enables SigV4 signing of Elasticsearch requests.
	AWSRegion string
	// RequestTimeout bounds remote write requests.
	RequestTimeout time.Duration
	// Stdout is where the stdout sink writes, os.Stdout when nil.
	Stdout io.Writer
}

// New picks the sink implementation from the URL scheme:
//
//   http://, https://            Elasticsearch / OpenSearch
//   prw+http://, prw+https://    Prometheus remote write
//   tsdb:///path                 local Prometheus TSDB
//   bolt:///path/file.db         local bbolt file
//   stdout:                      JSON lines on stdout
func New(opts Options) (Sink, error) {
	u, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("cannot parse sink URL: %w", err)
	}
	if opts.Index == "" {
		return nil, fmt.Errorf("index name is required")
	}

	switch strings.ToLower(u.Scheme) {
	case SchemeHTTP, SchemeHTTPS:
		transport := DefaultTransport()
		if opts.AWSRegion != "" {
			transport, err = NewSigningRoundTripper(transport, opts.AWSRegion, OpenSearchService)
			if err != nil {
				return nil, err
			}
		}
		return NewElasticsearch(opts.URL, opts.Index, transport)
	case SchemeRemoteWrite, SchemeRemoteWriteTLS:
		target := *u
		target.Scheme = strings.TrimPrefix(strings.ToLower(u.Scheme), "prw+")
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		return NewRemoteWrite(&target, opts.Index, timeout)
	case SchemeTSDB:
		return NewTSDB(localPath(u), opts.Index)
	case SchemeBolt:
		return NewBolt(localPath(u), opts.Index)
	case SchemeStdout:
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		return NewConsole(out, opts.Index), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
}

// localPath accepts tsdb:///abs/dir, tsdb://rel/dir and tsdb:rel/dir.
func localPath(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}
	return u.Host + u.Path
}
