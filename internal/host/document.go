package host

import (
	"encoding/json"
	"time"

	"github.com/go-openapi/strfmt"
)

const (
	// MemoryTotal is the fixed amount of memory every simulated host reports.
	MemoryTotal int64 = 1000 * 1000
	// MemoryFreeMax is the upper bound of the free memory generator.
	MemoryFreeMax = MemoryTotal * 4 / 10
)

// Field names of the stored document, also used by the sinks that flatten it.
const (
	FieldTimestamp   = "@timestamp"
	FieldHostName    = "host.name"
	FieldCPUPct      = "system.cpu.total.norm.pct"
	FieldMemoryFree  = "system.memory.actual.free"
	FieldMemoryTotal = "system.memory.total"
)

// Document is one telemetry snapshot of a host. It is never mutated after
// NextDocument returns it.
type Document struct {
	Timestamp   time.Time
	HostName    string
	CPUPct      float64
	MemoryFree  int64
	MemoryTotal int64
	Labels      map[string]string
}

type documentJSON struct {
	Timestamp strfmt.DateTime   `json:"@timestamp"`
	Host      hostJSON          `json:"host"`
	System    systemJSON        `json:"system"`
	Labels    map[string]string `json:"labels,omitempty"`
}

type hostJSON struct {
	Name string `json:"name"`
}

type systemJSON struct {
	CPU    cpuJSON    `json:"cpu"`
	Memory memoryJSON `json:"memory"`
}

type cpuJSON struct {
	Total struct {
		Norm struct {
			Pct float64 `json:"pct"`
		} `json:"norm"`
	} `json:"total"`
}

type memoryJSON struct {
	Actual struct {
		Free int64 `json:"free"`
	} `json:"actual"`
	Total int64 `json:"total"`
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{
		Timestamp: strfmt.DateTime(d.Timestamp.UTC()),
		Host:      hostJSON{Name: d.HostName},
		Labels:    d.Labels,
	}
	out.System.CPU.Total.Norm.Pct = d.CPUPct
	out.System.Memory.Actual.Free = d.MemoryFree
	out.System.Memory.Total = d.MemoryTotal
	return json.Marshal(out)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var in documentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*d = Document{
		Timestamp:   time.Time(in.Timestamp),
		HostName:    in.Host.Name,
		CPUPct:      in.System.CPU.Total.Norm.Pct,
		MemoryFree:  in.System.Memory.Actual.Free,
		MemoryTotal: in.System.Memory.Total,
		Labels:      in.Labels,
	}
	return nil
}
