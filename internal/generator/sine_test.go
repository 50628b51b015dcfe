package generator_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/project-flotta/sys-metrics-sim/internal/generator"
)

var _ = Describe("Sine", func() {

	It("follows the quarter points of the wave", func() {
		// given
		sine, err := generator.NewSine(generator.Bounds{Min: 0, Max: 100}, 4)
		Expect(err).NotTo(HaveOccurred())

		// when
		values := []float64{}
		for i := 0; i < 5; i++ {
			values = append(values, sine.Next())
		}

		// then
		Expect(values).To(Equal([]float64{50, 100, 50, 0, 50}))
	})

	It("repeats itself after a full period", func() {
		// given
		sine, err := generator.NewSine(generator.Bounds{Min: 0, Max: 400000}, 16)
		Expect(err).NotTo(HaveOccurred())

		// when
		first := []float64{}
		for i := 0; i < 16; i++ {
			first = append(first, sine.Next())
		}
		second := []float64{}
		for i := 0; i < 16; i++ {
			second = append(second, sine.Next())
		}

		// then
		Expect(second).To(Equal(first))
		Expect(sine.Phase()).To(Equal(0))
	})

	It("keeps two decimals for fractions", func() {
		sine, err := generator.NewSine(generator.Bounds{Min: 0, Max: 1}, 7)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 14; i++ {
			Expect(hasAtMostTwoDecimals(sine.Next())).To(BeTrue())
		}
	})

	It("does not overshoot when mid and height both round up", func() {
		// mid 1.5 -> 2 and height 1.5 -> 2 would peak at 4
		sine, err := generator.NewSine(generator.Bounds{Min: 0, Max: 3}, 4)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 8; i++ {
			Expect(sine.Next()).To(And(BeNumerically(">=", 0), BeNumerically("<=", 3)))
		}
	})

	It("ignores manual control", func() {
		sine, err := generator.NewSine(generator.Bounds{Min: 0, Max: 100}, 4)
		Expect(err).NotTo(HaveOccurred())

		sine.Inc()
		sine.Inc()
		sine.Dec()

		Expect(sine.Next()).To(Equal(50.0))
		Expect(sine.Next()).To(Equal(100.0))
	})

	It("rejects a non positive period", func() {
		_, err := generator.NewSine(generator.Bounds{Min: 0, Max: 1}, 0)
		Expect(errors.Is(err, generator.ErrInvalidPeriod)).To(BeTrue())

		_, err = generator.NewSine(generator.Bounds{Min: 0, Max: 1}, -3)
		Expect(errors.Is(err, generator.ErrInvalidPeriod)).To(BeTrue())
	})
})
