package host_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/project-flotta/sys-metrics-sim/internal/host"
)

var _ = Describe("Document", func() {

	doc := &host.Document{
		Timestamp:   time.Date(2026, 10, 19, 12, 30, 15, 250*int(time.Millisecond), time.FixedZone("CEST", 2*3600)),
		HostName:    "host-A",
		CPUPct:      0.42,
		MemoryFree:  123456,
		MemoryTotal: host.MemoryTotal,
	}

	It("encodes the nested telemetry layout", func() {
		data, err := json.Marshal(doc)
		Expect(err).NotTo(HaveOccurred())

		Expect(data).To(MatchJSON(`{
			"@timestamp": "2026-10-19T10:30:15.250Z",
			"host": {"name": "host-A"},
			"system": {
				"cpu": {"total": {"norm": {"pct": 0.42}}},
				"memory": {"actual": {"free": 123456}, "total": 1000000}
			}
		}`))
	})

	It("adds labels only when present", func() {
		labelled := *doc
		labelled.Labels = map[string]string{"env": "demo"}

		data, err := json.Marshal(&labelled)
		Expect(err).NotTo(HaveOccurred())

		var raw map[string]interface{}
		Expect(json.Unmarshal(data, &raw)).To(Succeed())
		Expect(raw).To(HaveKeyWithValue("labels", map[string]interface{}{"env": "demo"}))
	})

	It("decodes what it encodes", func() {
		data, err := json.Marshal(doc)
		Expect(err).NotTo(HaveOccurred())

		decoded := &host.Document{}
		Expect(json.Unmarshal(data, decoded)).To(Succeed())
		Expect(decoded.HostName).To(Equal(doc.HostName))
		Expect(decoded.MemoryFree).To(Equal(doc.MemoryFree))
		Expect(decoded.Timestamp.Equal(doc.Timestamp)).To(BeTrue())
	})
})
