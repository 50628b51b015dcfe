package sink

import (
	"sort"
	"strings"

	"github.com/prometheus/common/model"

	"github.com/project-flotta/sys-metrics-sim/internal/host"
)

const (
	MetricCPUPct      = "system_cpu_total_norm_pct"
	MetricMemoryFree  = "system_memory_actual_free_bytes"
	MetricMemoryTotal = "system_memory_total_bytes"

	LabelHostName = "host_name"
	LabelIndex    = "index"
)

// sample is one document field flattened into a time series point.
type sample struct {
	labels    map[string]string
	timestamp int64
	value     float64
}

// documentSamples flattens a document into one sample per numeric field,
// timestamps in milliseconds.
func documentSamples(doc *host.Document, index string) []sample {
	base := map[string]string{
		LabelHostName: doc.HostName,
		LabelIndex:    index,
	}
	for k, v := range doc.Labels {
		name := sanitizeLabelName(k)
		if _, ok := base[name]; ok {
			continue
		}
		base[name] = v
	}

	ts := doc.Timestamp.UnixNano() / 1e6
	fields := []struct {
		name  string
		value float64
	}{
		{MetricCPUPct, doc.CPUPct},
		{MetricMemoryFree, float64(doc.MemoryFree)},
		{MetricMemoryTotal, float64(doc.MemoryTotal)},
	}

	res := make([]sample, 0, len(fields))
	for _, f := range fields {
		lbls := make(map[string]string, len(base)+1)
		for k, v := range base {
			lbls[k] = v
		}
		lbls[model.MetricNameLabel] = f.name
		res = append(res, sample{labels: lbls, timestamp: ts, value: f.value})
	}
	return res
}

func sanitizeLabelName(name string) string {
	if model.LabelName(name).IsValid() {
		return name
	}
	clean := strings.Map(func(r rune) rune {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)
	if clean == "" || (clean[0] >= '0' && clean[0] <= '9') {
		clean = "_" + clean
	}
	return clean
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
