package generator_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/project-flotta/sys-metrics-sim/internal/generator"
)

var _ = Describe("Step", func() {

	var step *generator.Step

	BeforeEach(func() {
		var err error
		step, err = generator.NewStep(generator.Bounds{Min: 0, Max: 1})
		Expect(err).NotTo(HaveOccurred())
	})

	It("does not move on Next", func() {
		for i := 0; i < 10; i++ {
			Expect(step.Next()).To(Equal(0.5))
		}
		Expect(step.Current()).To(Equal(0.5))
	})

	It("moves exactly one step per Inc and Dec", func() {
		step.Inc()
		Expect(step.Next()).To(Equal(0.55))

		step.Inc()
		Expect(step.Next()).To(Equal(0.6))

		step.Dec()
		step.Dec()
		step.Dec()
		Expect(step.Next()).To(Equal(0.45))
	})

	It("clamps at both bounds", func() {
		for i := 0; i < 40; i++ {
			step.Inc()
		}
		Expect(step.Current()).To(Equal(1.0))

		for i := 0; i < 40; i++ {
			step.Dec()
		}
		Expect(step.Current()).To(Equal(0.0))
	})

	It("uses whole steps for large ranges", func() {
		memory, err := generator.NewStep(generator.Bounds{Min: 0, Max: 400000})
		Expect(err).NotTo(HaveOccurred())
		Expect(memory.StepSize()).To(Equal(20000.0))

		memory.Dec()
		Expect(memory.Next()).To(Equal(180000.0))
	})
})
