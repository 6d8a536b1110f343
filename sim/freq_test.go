package sim

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Freq", func() {
	It("should get period", func() {
		var f = 1 * KHz
		Expect(f.Period()).To(BeNumerically("~", 1e-3, 1e-15))
	})

	It("should panic on zero frequency", func() {
		var f Freq
		Expect(func() { f.Period() }).To(Panic())
	})

	It("should get this tick", func() {
		var f = 1 * Hz
		Expect(f.ThisTick(1)).To(BeNumerically("~", 1, 1e-12))
		Expect(f.ThisTick(1.5)).To(BeNumerically("~", 2, 1e-12))
	})

	It("should get the next tick", func() {
		var f = 1 * KHz
		Expect(f.NextTick(0.001)).To(BeNumerically("~", 0.002, 1e-12))
		Expect(f.NextTick(0.0015)).To(BeNumerically("~", 0.002, 1e-12))
	})

	It("should get the n cycles later", func() {
		var f = 1 * KHz
		Expect(f.NCyclesLater(200, 0.001)).To(
			BeNumerically("~", 0.201, 1e-12))
	})

	It("should convert periods to frequencies", func() {
		Expect(FreqOfPeriod(time.Millisecond)).To(BeNumerically("~", 1000, 1e-9))
		Expect(FreqOfPeriod(200 * time.Millisecond)).To(BeNumerically("~", 5, 1e-9))
		Expect(func() { FreqOfPeriod(0) }).To(Panic())
	})

	It("should count whole cycles in a duration", func() {
		var f = 1 * KHz
		Expect(f.Cycles(200 * time.Millisecond)).To(Equal(uint64(200)))
		Expect(f.Cycles(100 * time.Microsecond)).To(Equal(uint64(1)))
	})

	It("should convert virtual time to durations", func() {
		Expect(VTimeInSec(0.2).Duration()).To(Equal(200 * time.Millisecond))
	})
})
