package sink

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"git.sr.ht/~spc/go-log"
	"github.com/golang/snappy"
	config_util "github.com/prometheus/common/config"
	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/prompb"
	"github.com/prometheus/prometheus/storage/remote"

	"github.com/project-flotta/sys-metrics-sim/internal/host"
)

const remoteWriteClientName = "sys-metrics-sim"

// WriteClient sends one snappy compressed prompb.WriteRequest.
//go:generate mockgen -package=sink -destination=write_client_mock.go . WriteClient
type WriteClient interface {
	Write(context.Context, []byte) error
}

type writeClient struct {
	client remote.WriteClient
}

func (w *writeClient) Write(ctx context.Context, data []byte) error {
	return w.client.Store(ctx, data)
}

// RemoteWrite pushes every document as three samples to a Prometheus
// remote write endpoint. There is no schema to create.
type RemoteWrite struct {
	url    string
	index  string
	client WriteClient
}

func NewRemoteWrite(serverURL *url.URL, index string, timeout time.Duration) (*RemoteWrite, error) {
	client, err := remote.NewWriteClient(remoteWriteClientName, &remote.ClientConfig{
		Timeout: model.Duration(timeout),
		URL: &config_util.URL{
			URL: serverURL,
		},
		HTTPClientConfig: config_util.HTTPClientConfig{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed creating remote write client: %w", err)
	}
	return NewRemoteWriteWithClient(serverURL.Redacted(), index, &writeClient{client: client}), nil
}

func NewRemoteWriteWithClient(name, index string, client WriteClient) *RemoteWrite {
	return &RemoteWrite{url: name, index: index, client: client}
}

func (r *RemoteWrite) EnsureSchema(context.Context) error {
	return nil
}

func (r *RemoteWrite) Write(ctx context.Context, doc *host.Document) error {
	writeRequest := prompb.WriteRequest{
		Timeseries: toTimeSeries(documentSamples(doc, r.index)),
	}

	reqBytes, err := writeRequest.Marshal()
	if err != nil {
		return fmt.Errorf("cannot marshal prompb.WriteRequest: %w", err)
	}

	if log.CurrentLevel() >= log.LevelTrace {
		log.Tracef("sending write request for %s at %s", doc.HostName, doc.Timestamp)
	}

	if err := r.client.Write(ctx, snappy.Encode(nil, reqBytes)); err != nil {
		return fmt.Errorf("remote write to %s failed: %w", r.url, err)
	}
	return nil
}

func (r *RemoteWrite) Close() error {
	return nil
}

func (r *RemoteWrite) String() string {
	return fmt.Sprintf("remote write %s (index %s)", r.url, r.index)
}

func toTimeSeries(samples []sample) []prompb.TimeSeries {
	timeSeries := make([]prompb.TimeSeries, len(samples))
	for i, s := range samples {
		ts := &(timeSeries[i])
		ts.Labels = make([]prompb.Label, 0, len(s.labels))
		for _, k := range sortedKeys(s.labels) {
			ts.Labels = append(ts.Labels, prompb.Label{
				Name:  k,
				Value: s.labels[k],
			})
		}
		ts.Samples = []prompb.Sample{{
			Value:     s.value,
			Timestamp: s.timestamp,
		}}
	}
	return timeSeries
}
