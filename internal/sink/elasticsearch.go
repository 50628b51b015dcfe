package sink

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/project-flotta/sys-metrics-sim/internal/host"
)

// IndexMapping types the document fields so that dashboards can aggregate
// them without dynamic mapping guesses.
const IndexMapping = `{
  "mappings": {
    "properties": {
      "@timestamp": {"type": "date"},
      "host": {"properties": {"name": {"type": "keyword"}}},
      "system": {
        "properties": {
          "cpu": {"properties": {"total": {"properties": {"norm": {"properties": {"pct": {"type": "float"}}}}}}},
          "memory": {
            "properties": {
              "actual": {"properties": {"free": {"type": "long"}}},
              "total": {"type": "long"}
            }
          }
        }
      },
      "labels": {"type": "object", "dynamic": true}
    }
  }
}`

// Elasticsearch indexes each document with its own id. Anything but
// 201 Created is an error.
type Elasticsearch struct {
	client *elasticsearch.Client
	index  string
	url    string
}

// DefaultTransport skips certificate verification, self signed clusters
// are the common case for test deployments.
func DefaultTransport() http.RoundTripper {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402
	return transport
}

func NewElasticsearch(clusterURL, index string, transport http.RoundTripper) (*Elasticsearch, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{clusterURL},
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create elasticsearch client: %w", err)
	}
	name := clusterURL
	if u, err := url.Parse(clusterURL); err == nil {
		name = u.Redacted()
	}
	return &Elasticsearch{client: client, index: index, url: name}, nil
}

func (e *Elasticsearch) EnsureSchema(ctx context.Context) error {
	res, err := e.client.Indices.Exists([]string{e.index}, e.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("cannot check index %s: %w", e.index, err)
	}
	closeBody(res)

	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return errors.Errorf("unexpected status %d checking index %s", res.StatusCode, e.index)
	}

	res, err = e.client.Indices.Create(e.index,
		e.client.Indices.Create.WithBody(strings.NewReader(IndexMapping)),
		e.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("cannot create index %s: %w", e.index, err)
	}
	defer closeBody(res)
	if res.IsError() {
		return errors.Errorf("cannot create index %s: %s", e.index, res.String())
	}
	return nil
}

func (e *Elasticsearch) Write(ctx context.Context, doc *host.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cannot marshal document: %w", err)
	}

	res, err := e.client.Index(e.index, bytes.NewReader(body),
		e.client.Index.WithDocumentID(uuid.New().String()),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("error indexing document for %s: %w", doc.HostName, err)
	}
	defer closeBody(res)

	if res.StatusCode != http.StatusCreated {
		return errors.Errorf("error indexing document for %s: %s", doc.HostName, res.String())
	}
	return nil
}

func (e *Elasticsearch) Close() error {
	return nil
}

func (e *Elasticsearch) String() string {
	return fmt.Sprintf("elasticsearch %s (index %s)", e.url, e.index)
}

func closeBody(res *esapi.Response) {
	if res != nil && res.Body != nil {
		_ = res.Body.Close()
	}
}
