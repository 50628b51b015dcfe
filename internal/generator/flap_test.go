package generator_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/project-flotta/sys-metrics-sim/internal/generator"
)

var _ = Describe("Flap", func() {

	It("alternates between min and max starting with min", func() {
		// given
		flap, err := generator.NewFlap(generator.Bounds{Min: 0, Max: 400000})
		Expect(err).NotTo(HaveOccurred())
		Expect(flap.Current()).To(Equal(0.0))

		// when
		values := []float64{}
		for i := 0; i < 6; i++ {
			values = append(values, flap.Next())
		}

		// then
		Expect(values).To(Equal([]float64{0, 400000, 0, 400000, 0, 400000}))
	})

	It("ignores manual control", func() {
		flap, err := generator.NewFlap(generator.Bounds{Min: 0, Max: 1})
		Expect(err).NotTo(HaveOccurred())

		flap.Inc()
		Expect(flap.Next()).To(Equal(0.0))
		flap.Dec()
		Expect(flap.Next()).To(Equal(1.0))
	})
})
