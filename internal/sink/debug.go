package sink

import (
	"context"
	"encoding/json"

	"git.sr.ht/~spc/go-log"

	"github.com/project-flotta/sys-metrics-sim/internal/host"
)

type debugSink struct {
	Sink
	index string
}

// WithDebug logs every document at debug level before handing it to s.
func WithDebug(s Sink, index string) Sink {
	return &debugSink{Sink: s, index: index}
}

func (d *debugSink) Write(ctx context.Context, doc *host.Document) error {
	if log.CurrentLevel() >= log.LevelDebug {
		body, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		log.Debugf("writing to %s: %s", d.index, body)
	}
	return d.Sink.Write(ctx, doc)
}
