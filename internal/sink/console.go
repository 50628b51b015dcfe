package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/project-flotta/sys-metrics-sim/internal/host"
)

// Console prints one JSON document per line.
type Console struct {
	lock  sync.Mutex
	enc   *json.Encoder
	index string
}

func NewConsole(out io.Writer, index string) *Console {
	return &Console{enc: json.NewEncoder(out), index: index}
}

func (c *Console) EnsureSchema(context.Context) error {
	return nil
}

func (c *Console) Write(_ context.Context, doc *host.Document) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.enc.Encode(doc)
}

func (c *Console) Close() error {
	return nil
}

func (c *Console) String() string {
	return fmt.Sprintf("stdout (index %s)", c.index)
}
