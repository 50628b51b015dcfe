package sink

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/tsdb"

	"github.com/project-flotta/sys-metrics-sim/internal/host"
)

// TSDB appends documents to a local Prometheus block store.
type TSDB struct {
	db    *tsdb.DB
	dir   string
	index string
}

type DataPoint struct {
	Time  int64
	Value float64
}

type Series struct {
	Labels     map[string]string
	DataPoints []DataPoint
}

func NewTSDB(dir, index string) (*TSDB, error) {
	if dir == "" {
		return nil, fmt.Errorf("tsdb sink needs a directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create directory: %w", err)
	}
	db, err := tsdb.Open(dir, nil, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot open tsdb at %s: %w", dir, err)
	}
	return &TSDB{db: db, dir: dir, index: index}, nil
}

func (t *TSDB) EnsureSchema(context.Context) error {
	return nil
}

func (t *TSDB) Write(ctx context.Context, doc *host.Document) error {
	appender := t.db.Appender(ctx)
	for _, s := range documentSamples(doc, t.index) {
		if _, err := appender.Append(0, labels.FromMap(s.labels), s.timestamp, s.value); err != nil {
			_ = appender.Rollback()
			return fmt.Errorf("cannot append %s for %s: %w", s.labels[model.MetricNameLabel], doc.HostName, err)
		}
	}
	return appender.Commit()
}

// Query returns every series with samples between tMin and tMax.
func (t *TSDB) Query(ctx context.Context, tMin, tMax time.Time) ([]Series, error) {
	q, err := t.db.Querier(ctx, toMillis(tMin), toMillis(tMax))
	if err != nil {
		return nil, err
	}
	defer q.Close()

	seriesSet := q.Select(true, nil, labels.MustNewMatcher(labels.MatchRegexp, model.MetricNameLabel, ".+"))
	result := []Series{}
	for seriesSet.Next() {
		s := seriesSet.At()
		series := Series{Labels: s.Labels().Map()}
		it := s.Iterator()
		for it.Next() {
			ts, v := it.At()
			series.DataPoints = append(series.DataPoints, DataPoint{Time: ts, Value: v})
		}
		if err := it.Err(); err != nil {
			return nil, err
		}
		result = append(result, series)
	}
	return result, seriesSet.Err()
}

func (t *TSDB) Close() error {
	return t.db.Close()
}

func (t *TSDB) String() string {
	return fmt.Sprintf("tsdb %s (index %s)", t.dir, t.index)
}

func toMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
