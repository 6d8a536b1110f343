package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Ticking Component", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		ticker   *MockTicker
		tc       *TickingComponent
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)
		ticker = NewMockTicker(mockCtrl)
		tc = NewTickingComponent("TC", engine, 1, ticker)

		engine.EXPECT().CurrentTime().Return(VTimeInSec(10)).AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should schedule the next tick on TickLater", func() {
		engine.EXPECT().Schedule(gomock.Any()).
			Do(func(e Event) {
				Expect(e.Time()).To(Equal(VTimeInSec(11)))
				Expect(e.IsSecondary()).To(BeFalse())
				Expect(e.Handler()).To(BeIdenticalTo(tc))
			})

		tc.TickLater()
	})

	It("should schedule a tick at the current cycle on TickNow", func() {
		engine.EXPECT().Schedule(gomock.Any()).
			Do(func(e Event) {
				Expect(e.Time()).To(Equal(VTimeInSec(10)))
			})

		tc.TickNow()
	})

	It("should tick when the ticker make progress in a tick", func() {
		engine.EXPECT().Schedule(gomock.Any()).
			Do(func(e Event) {
				Expect(e.Time()).To(Equal(VTimeInSec(11)))
			})
		ticker.EXPECT().Tick().Return(true)

		Expect(tc.Handle(MakeTickEvent(tc, 10))).To(Succeed())
	})

	It("should not tick if there is another tick scheduled in the future", func() {
		engine.EXPECT().Schedule(gomock.Any()).Times(1)
		ticker.EXPECT().Tick().Return(true).Times(2)

		Expect(tc.Handle(MakeTickEvent(tc, 10))).To(Succeed())
		Expect(tc.Handle(MakeTickEvent(tc, 10))).To(Succeed())
	})

	It("should stop ticking if no progress is made", func() {
		ticker.EXPECT().Tick().Return(false)

		Expect(tc.Handle(MakeTickEvent(tc, 10))).To(Succeed())
	})

	It("should schedule secondary ticks for secondary components", func() {
		stc := NewSecondaryTickingComponent("STC", engine, 1, ticker)
		engine.EXPECT().Schedule(gomock.Any()).
			Do(func(e Event) {
				Expect(e.IsSecondary()).To(BeTrue())
			})

		stc.TickLater()
	})
})
