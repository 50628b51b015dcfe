package sink_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/project-flotta/sys-metrics-sim/internal/sink"
)

var _ = Describe("Bolt", func() {
	var (
		dir string
		db  *sink.Bolt
		ctx = context.Background()
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "sim-bolt")
		Expect(err).NotTo(HaveOccurred())
		db, err = sink.NewBolt(filepath.Join(dir, "docs.db"), "metrics-sim")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
		_ = os.RemoveAll(dir)
	})

	It("is empty after creating the bucket", func() {
		// when
		Expect(db.EnsureSchema(ctx)).To(Succeed())

		// then
		docs, err := db.Documents()
		Expect(err).NotTo(HaveOccurred())
		Expect(docs).To(BeEmpty())
	})

	It("keeps documents in write order", func() {
		// given
		first := newDocument("host-A")
		second := newDocument("host-B")
		second.Labels = map[string]string{"env": "lab"}

		// when
		Expect(db.Write(ctx, first)).To(Succeed())
		Expect(db.Write(ctx, second)).To(Succeed())

		// then
		docs, err := db.Documents()
		Expect(err).NotTo(HaveOccurred())
		Expect(docs).To(HaveLen(2))
		Expect(docs[0].HostName).To(Equal("host-A"))
		Expect(docs[0].Timestamp.Equal(documentTime)).To(BeTrue())
		Expect(docs[0].CPUPct).To(Equal(0.5))
		Expect(docs[0].MemoryFree).To(Equal(int64(200000)))
		Expect(docs[1].HostName).To(Equal("host-B"))
		Expect(docs[1].Labels).To(HaveKeyWithValue("env", "lab"))
	})

	It("names the file and bucket", func() {
		Expect(db.String()).To(ContainSubstring("docs.db"))
		Expect(db.String()).To(ContainSubstring("metrics-sim"))
	})
})
