package host

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/project-flotta/sys-metrics-sim/internal/generator"
)

var (
	// CPUBounds is the normalised CPU usage range.
	CPUBounds = generator.Bounds{Min: 0, Max: 1}
	// MemoryFreeBounds is the free memory range in bytes.
	MemoryFreeBounds = generator.Bounds{Min: 0, Max: float64(MemoryFreeMax)}
)

type Host struct {
	name   string
	cpu    generator.Generator
	mem    generator.Generator
	labels map[string]string
	now    func() time.Time
}

type Option func(*Host)

// WithLabels attaches static labels to every document of the host.
func WithLabels(labels map[string]string) Option {
	return func(h *Host) {
		if len(labels) == 0 {
			return
		}
		h.labels = make(map[string]string, len(labels))
		for k, v := range labels {
			h.labels[k] = v
		}
	}
}

// WithClock replaces time.Now as the capture time source.
func WithClock(now func() time.Time) Option {
	return func(h *Host) {
		h.now = now
	}
}

func New(name string, cpu, mem generator.Generator, opts ...Option) *Host {
	h := &Host{
		name: name,
		cpu:  cpu,
		mem:  mem,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewForMode creates a host with CPU and free memory generators of the
// same mode sharing one period.
func NewForMode(name string, mode generator.Mode, period int, source generator.Source, opts ...Option) (*Host, error) {
	cpu, err := generator.New(mode, generator.Params{Bounds: CPUBounds, Period: period, Source: source})
	if err != nil {
		return nil, fmt.Errorf("cannot create cpu generator for %s: %w", name, err)
	}
	mem, err := generator.New(mode, generator.Params{Bounds: MemoryFreeBounds, Period: period, Source: source})
	if err != nil {
		return nil, fmt.Errorf("cannot create memory generator for %s: %w", name, err)
	}
	return New(name, cpu, mem, opts...), nil
}

// Name returns host-A for 0, host-Z for 25, host-AA for 26 and so on.
func Name(index int) string {
	letters := ""
	for n := index; n >= 0; n = n/26 - 1 {
		letters = string(rune('A'+n%26)) + letters
	}
	return "host-" + letters
}

func (h *Host) Name() string {
	return h.name
}

func (h *Host) CPU() generator.Generator {
	return h.cpu
}

func (h *Host) Memory() generator.Generator {
	return h.mem
}

// NextDocument advances both generators once and stamps them with a single
// capture time.
func (h *Host) NextDocument() *Document {
	cpu := h.cpu.Next()
	mem := h.mem.Next()
	return &Document{
		Timestamp:   h.now(),
		HostName:    h.name,
		CPUPct:      cpu,
		MemoryFree:  int64(mem),
		MemoryTotal: MemoryTotal,
		Labels:      h.labels,
	}
}

func (h *Host) Inc() {
	h.cpu.Inc()
	h.mem.Inc()
}

func (h *Host) Dec() {
	h.cpu.Dec()
	h.mem.Dec()
}

// String renders the current values for the console.
func (h *Host) String() string {
	var sb strings.Builder
	mem := h.mem.Current()
	fmt.Fprintf(&sb, "%s: cpu %s, free mem %s",
		h.name,
		h.cpu.Rounding().Format(h.cpu.Current()),
		h.mem.Rounding().Format(mem))
	if mem >= 0 {
		fmt.Fprintf(&sb, " (%s)", humanize.Bytes(uint64(mem)))
	}
	return sb.String()
}
