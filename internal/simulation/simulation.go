package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"git.sr.ht/~spc/go-log"
	"github.com/dustin/go-humanize"

	"github.com/project-flotta/sys-metrics-sim/internal/generator"
	"github.com/project-flotta/sys-metrics-sim/internal/host"
	"github.com/project-flotta/sys-metrics-sim/internal/metrics"
	"github.com/project-flotta/sys-metrics-sim/internal/sink"
)

const (
	DefaultStatsInterval = 30 * time.Second
	DefaultWriteTimeout  = 10 * time.Second

	basePeriod = 16
)

var ErrAlreadyRunning = errors.New("simulation is already running")

type State int32

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "Running"
	}
	return "Idle"
}

// Dispatcher handles key events between ticks.
type Dispatcher interface {
	Dispatch(key string) error
}

type Option func(*Simulation)

func WithRecorder(recorder *metrics.Recorder) Option {
	return func(s *Simulation) {
		s.recorder = recorder
	}
}

func WithStatsInterval(interval time.Duration) Option {
	return func(s *Simulation) {
		if interval > 0 {
			s.statsInterval = interval
		}
	}
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Simulation) {
		if timeout > 0 {
			s.writeTimeout = timeout
		}
	}
}

// Simulation ticks every host on a shared clock and hands the documents to
// the sink. Host state is only touched from the goroutine calling Run.
type Simulation struct {
	hosts         []*host.Host
	sink          sink.Sink
	recorder      *metrics.Recorder
	interval      time.Duration
	statsInterval time.Duration
	writeTimeout  time.Duration

	state       int32
	docsWritten uint64
}

// Period gives the host at index a sine period of its own, so that hosts
// are visibly out of phase.
func Period(index int) int {
	return basePeriod * (index + 1)
}

func NewHosts(mode generator.Mode, count int, source generator.Source, opts ...host.Option) ([]*host.Host, error) {
	hosts := make([]*host.Host, 0, count)
	for i := 0; i < count; i++ {
		h, err := host.NewForMode(host.Name(i), mode, Period(i), source, opts...)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, h)
	}
	return hosts, nil
}

func New(hosts []*host.Host, target sink.Sink, interval time.Duration, opts ...Option) (*Simulation, error) {
	if target == nil {
		return nil, fmt.Errorf("simulation needs a sink")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", interval)
	}

	s := &Simulation{
		hosts:         hosts,
		sink:          target,
		interval:      interval,
		statsInterval: DefaultStatsInterval,
		writeTimeout:  DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Simulation) Hosts() []*host.Host {
	return s.hosts
}

func (s *Simulation) State() State {
	return State(atomic.LoadInt32(&s.state))
}

func (s *Simulation) DocsWritten() uint64 {
	return atomic.LoadUint64(&s.docsWritten)
}

// Tick writes one document per host, in creation order. The first write
// error aborts the tick.
func (s *Simulation) Tick(ctx context.Context) error {
	for _, h := range s.hosts {
		doc := h.NextDocument()
		s.recorder.Generated(doc)
		if err := s.write(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) write(ctx context.Context, doc *host.Document) error {
	writeCtx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	start := time.Now()
	err := s.sink.Write(writeCtx, doc)
	took := time.Since(start)
	if err != nil {
		s.recorder.Failed(doc.HostName, took)
		return fmt.Errorf("cannot write document for %s to %s: %w", doc.HostName, s.sink, err)
	}

	s.recorder.Written(doc.HostName, took)
	atomic.AddUint64(&s.docsWritten, 1)
	return nil
}

// Run ticks until ctx is done, a write fails or the dispatcher returns an
// error. Key events are dispatched between ticks; a closed events channel
// only stops event handling.
func (s *Simulation) Run(ctx context.Context, events <-chan string, dispatcher Dispatcher) error {
	if !atomic.CompareAndSwapInt32(&s.state, int32(Idle), int32(Running)) {
		return ErrAlreadyRunning
	}

	log.Infof("started simulation of %d hosts every %s into %s", len(s.hosts), s.interval, s.sink)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	stats := time.NewTicker(s.statsInterval)
	defer stats.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Infof("simulation stopped, total docs written: %s", humanize.Comma(int64(s.DocsWritten())))
			return nil
		case <-ticker.C:
			log.Tracef("tick for %d hosts", len(s.hosts))
			if err := s.Tick(ctx); err != nil {
				if ctx.Err() != nil {
					continue
				}
				return err
			}
		case <-stats.C:
			log.Infof("total docs written: %s", humanize.Comma(int64(s.DocsWritten())))
		case key, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if dispatcher == nil {
				continue
			}
			if err := dispatcher.Dispatch(key); err != nil {
				return err
			}
		}
	}
}
