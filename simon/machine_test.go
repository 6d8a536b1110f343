package simon

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func expectValid(m *Machine) {
	d := m.Data()

	ExpectWithOffset(1, d.Round).To(BeNumerically(">=", 1))
	ExpectWithOffset(1, d.Round).To(BeNumerically("<=", MaxRound))
	ExpectWithOffset(1, d.Index).To(BeNumerically(">=", 0))
	ExpectWithOffset(1, d.Index).To(BeNumerically("<=", d.Round))

	for _, s := range d.Sequence {
		ExpectWithOffset(1, s).To(BeNumerically("<", NumSymbols))
	}
}

// startGame walks a fresh machine to its first blink.
func startGame(m *Machine) Outputs {
	m.Step(Inputs{})
	m.Step(Inputs{Start: true})
	out := m.Step(Inputs{})

	ExpectWithOffset(1, m.State()).To(Equal(StateBlinkOn))

	return out
}

// perfectInput returns what a flawless player holds during the next tick.
func perfectInput(m *Machine) Inputs {
	d := m.Data()

	switch m.State() {
	case StateWelcome:
		return Inputs{Start: true}
	case StateWaitForInput:
		if d.Index < d.Round {
			return Inputs{Buttons: d.Expected()}
		}
	}

	return Inputs{}
}

func stepUntil(m *Machine, s State, limit int, input func(*Machine) Inputs) Outputs {
	var out Outputs

	for i := 0; i < limit && m.State() != s; i++ {
		out = m.Step(input(m))
		expectValid(m)
	}

	ExpectWithOffset(1, m.State()).To(Equal(s))

	return out
}

func idle(*Machine) Inputs {
	return Inputs{}
}

var _ = Describe("Machine", func() {
	var m *Machine

	BeforeEach(func() {
		m = NewMachine(DefaultSeed, RoundAdvance)
	})

	It("should show welcome when leaving init", func() {
		Expect(m.State()).To(Equal(StateInit))

		out := m.Step(Inputs{})

		Expect(m.State()).To(Equal(StateWelcome))
		Expect(out.Show).To(BeTrue())
		Expect(out.Text).To(Equal(TextWelcome))
		Expect(out.Drive).To(BeTrue())
		Expect(out.Lights).To(Equal(uint8(0)))
		Expect(m.Data().Round).To(Equal(1))
	})

	It("should stay in welcome until start is pressed", func() {
		m.Step(Inputs{})

		for i := 0; i < 10; i++ {
			out := m.Step(Inputs{Buttons: 0x01})
			Expect(m.State()).To(Equal(StateWelcome))
			Expect(out.Show).To(BeFalse())
			Expect(out.Drive).To(BeFalse())
		}

		m.Step(Inputs{Start: true})
		Expect(m.Data().Start).To(BeTrue())

		m.Step(Inputs{})
		Expect(m.State()).To(Equal(StateBlinkOn))
	})

	It("should generate the same sequence from the same seed", func() {
		other := NewMachine(42, RoundAdvance)
		m = NewMachine(42, RoundAdvance)

		startGame(m)
		startGame(other)

		Expect(m.Data().Sequence).To(Equal(other.Data().Sequence))
		expectValid(m)
	})

	It("should play the first round and wait for the player", func() {
		out := startGame(m)
		seq := m.Data().Sequence

		Expect(out.Drive).To(BeTrue())
		Expect(out.Lights).To(Equal(seq[0].Bit()))

		out = m.Step(Inputs{})
		Expect(m.State()).To(Equal(StateBlinkOff))
		Expect(out.Lights).To(Equal(uint8(0)))
		Expect(m.Data().Index).To(Equal(1))

		m.Step(Inputs{})
		Expect(m.State()).To(Equal(StateWaitForInput))
		Expect(m.Data().Index).To(Equal(0))

		out = m.Step(Inputs{Buttons: seq[0].Bit()})
		Expect(m.State()).To(Equal(StateWaitForInput))
		Expect(out.Lights).To(Equal(seq[0].Bit()), "lights mirror the buttons")

		m.Step(Inputs{Buttons: seq[0].Bit()})
		Expect(m.State()).To(Equal(StateCheckInput))
		Expect(m.Data().Mistake).To(BeFalse())

		m.Step(Inputs{})
		Expect(m.State()).To(Equal(StateCheckInput))

		m.Step(Inputs{})
		Expect(m.State()).To(Equal(StateWaitForInput))
		Expect(m.Data().Index).To(Equal(1))
		Expect(m.Data().Round).To(Equal(1))
	})

	It("should advance to the next round after a full replay", func() {
		startGame(m)
		stepUntil(m, StateWaitForInput, 10, idle)
		stepUntil(m, StateCheckInput, 10, perfectInput)
		stepUntil(m, StateWaitForInput, 10, perfectInput)

		out := m.Step(Inputs{})

		Expect(m.State()).To(Equal(StateBlinkOn))
		Expect(m.Data().Round).To(Equal(2))
		Expect(out.Lights).To(Equal(m.Data().Sequence[0].Bit()))

		m.Step(Inputs{})
		out = m.Step(Inputs{})
		Expect(m.State()).To(Equal(StateBlinkOn))
		Expect(out.Lights).To(Equal(m.Data().Sequence[1].Bit()))
	})

	It("should win after replaying every round", func() {
		startGame(m)

		out := stepUntil(m, StateWin, 2000, perfectInput)

		Expect(out.Show).To(BeTrue())
		Expect(out.Text).To(Equal(TextWin))
		Expect(m.Data().Round).To(Equal(MaxRound))
		Expect(m.Data().Index).To(Equal(MaxRound))

		for i := 0; i < 20; i++ {
			m.Step(Inputs{Buttons: 0x0F})
			Expect(m.State()).To(Equal(StateWin))
		}

		m.Step(Inputs{Start: true})
		Expect(m.State()).To(Equal(StateWin))

		m.Step(Inputs{})
		Expect(m.State()).To(Equal(StateReset))

		out = m.Step(Inputs{})
		Expect(m.State()).To(Equal(StateWelcome))
		Expect(out.Text).To(Equal(TextWelcome))
	})

	It("should lose after a wrong button is released", func() {
		startGame(m)
		stepUntil(m, StateWaitForInput, 10, idle)

		wrong := ((m.Data().Sequence[0] + 1) % NumSymbols).Bit()

		m.Step(Inputs{Buttons: wrong})
		m.Step(Inputs{Buttons: wrong})
		Expect(m.State()).To(Equal(StateCheckInput))
		Expect(m.Data().Mistake).To(BeTrue())

		m.Step(Inputs{Buttons: wrong})
		m.Step(Inputs{})
		Expect(m.State()).To(Equal(StateCheckInput))
		Expect(m.Data().Mistake).To(BeTrue())

		out := m.Step(Inputs{})
		Expect(m.State()).To(Equal(StateLose))
		Expect(out.Text).To(Equal(TextLose))
		Expect(m.Data().Mistake).To(BeTrue())

		m.Step(Inputs{})
		Expect(m.State()).To(Equal(StateLose))
	})

	It("should flag a mistake when the held button changes", func() {
		startGame(m)
		stepUntil(m, StateWaitForInput, 10, idle)

		right := m.Data().Sequence[0]
		wrong := ((right + 2) % NumSymbols).Bit()

		m.Step(Inputs{Buttons: right.Bit()})
		m.Step(Inputs{Buttons: right.Bit()})
		Expect(m.Data().Mistake).To(BeFalse())

		m.Step(Inputs{Buttons: wrong})
		Expect(m.Data().Mistake).To(BeTrue())

		stepUntil(m, StateLose, 5, idle)
	})

	It("should treat several buttons as a mistake", func() {
		startGame(m)
		stepUntil(m, StateWaitForInput, 10, idle)

		both := m.Data().Expected() | ((m.Data().Sequence[0] + 1) % NumSymbols).Bit()

		m.Step(Inputs{Buttons: both})
		m.Step(Inputs{Buttons: both})

		Expect(m.State()).To(Equal(StateCheckInput))
		Expect(m.Data().Mistake).To(BeTrue())
	})

	It("should clear the game on reset", func() {
		startGame(m)
		stepUntil(m, StateWaitForInput, 10, idle)

		wrong := ((m.Data().Sequence[0] + 3) % NumSymbols).Bit()
		m.Step(Inputs{Buttons: wrong})
		m.Step(Inputs{Buttons: wrong})
		stepUntil(m, StateLose, 5, idle)

		m.Step(Inputs{Start: true})
		out := m.Step(Inputs{Start: true})

		Expect(m.State()).To(Equal(StateReset))
		Expect(out.Drive).To(BeTrue())
		Expect(out.Lights).To(Equal(uint8(0)))

		d := m.Data()
		Expect(d.Round).To(Equal(1))
		Expect(d.Index).To(Equal(0))
		Expect(d.Mistake).To(BeFalse())
		Expect(d.Start).To(BeFalse())
		Expect(d.Input).To(Equal(uint8(0)))

		m.Step(Inputs{})
		Expect(m.State()).To(Equal(StateWelcome))
	})

	It("should start a new sequence for the next game", func() {
		startGame(m)
		stepUntil(m, StateWin, 2000, perfectInput)

		m.Step(Inputs{Start: true})
		stepUntil(m, StateWelcome, 5, idle)
		stepUntil(m, StateBlinkOn, 5, perfectInput)

		Expect(m.Data().Round).To(Equal(1))
		Expect(m.Data().Mistake).To(BeFalse())
		expectValid(m)
	})

	It("should keep its bounds under random play", func() {
		player := rand.New(rand.NewSource(7))

		for i := 0; i < 20000; i++ {
			m.Step(Inputs{
				Buttons: uint8(player.Intn(16)) & uint8(player.Intn(2)*0x0F),
				Start:   player.Intn(8) == 0,
			})
			expectValid(m)
		}
	})

	Context("when rounds are held", func() {
		BeforeEach(func() {
			m = NewMachine(DefaultSeed, RoundHold)
		})

		It("should keep waiting after the first round", func() {
			startGame(m)
			stepUntil(m, StateWaitForInput, 10, idle)
			stepUntil(m, StateCheckInput, 10, perfectInput)
			stepUntil(m, StateWaitForInput, 10, perfectInput)

			for i := 0; i < 50; i++ {
				m.Step(Inputs{Buttons: uint8(1 << (i % NumSymbols))})
				Expect(m.State()).To(Equal(StateWaitForInput))
				Expect(m.Data().Index).To(Equal(1))
				Expect(m.Data().Round).To(Equal(1))
			}
		})
	})
})

var _ = Describe("DecodeOneHot", func() {
	It("should decode single buttons", func() {
		for s := Symbol(0); s < NumSymbols; s++ {
			got, ok := DecodeOneHot(s.Bit())
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(s))
		}
	})

	It("should reject other masks", func() {
		for _, mask := range []uint8{0x00, 0x03, 0x0F, 0x10, 0x81} {
			_, ok := DecodeOneHot(mask)
			Expect(ok).To(BeFalse())
		}
	})
})

var _ = Describe("State", func() {
	It("should have names", func() {
		Expect(StateWaitForInput.String()).To(Equal("WaitForInput"))
		Expect(State(42).String()).To(Equal("State(42)"))

		s, err := ParseState("CheckInput")
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(StateCheckInput))

		_, err = ParseState("Nope")
		Expect(err).To(HaveOccurred())
	})

	It("should parse round policies", func() {
		p, err := ParseRoundPolicy("hold")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(RoundHold))

		p, err = ParseRoundPolicy("")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(RoundAdvance))

		_, err = ParseRoundPolicy("faster")
		Expect(err).To(HaveOccurred())
	})
})
