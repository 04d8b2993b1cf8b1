package emulator_test

import (
	"time"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/assembler"
	"github.com/retroenv/chip8vm/internal/emulator"
)

func load(m *emulator.Machine, source string) {
	rom, err := assembler.AssembleString(source)
	Expect(err).NotTo(HaveOccurred())
	Expect(m.LoadROM(rom)).To(Succeed())
}

func step(m *emulator.Machine, count int) {
	for range count {
		Expect(m.Step()).To(Succeed())
	}
}

var _ = Describe("Machine", func() {
	var (
		mockCtrl   *gomock.Controller
		mockRandom *MockRandomSource
		m          *emulator.Machine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockRandom = NewMockRandomSource(mockCtrl)
		m = emulator.New(emulator.Config{Random: mockRandom})
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("arithmetic", func() {
		It("should set the carry flag on an overflowing ADD", func() {
			load(m, "LD V1, 250\nLD V2, 10\nADD V1, V2")
			step(m, 3)
			Expect(m.V(1)).To(Equal(uint8(4)))
			Expect(m.V(chip8.FlagRegister)).To(Equal(uint8(1)))
		})

		It("should clear the flag on a borrowing SUB", func() {
			load(m, "LD V1, 5\nLD V2, 10\nSUB V1, V2")
			step(m, 3)
			Expect(m.V(1)).To(Equal(uint8(251)))
			Expect(m.V(chip8.FlagRegister)).To(Equal(uint8(0)))
		})
	})

	Context("RND", func() {
		It("should mask the random byte with the immediate", func() {
			mockRandom.EXPECT().Uint8().Return(uint8(0xAB))
			mockRandom.EXPECT().Uint8().Return(uint8(0xFF))

			load(m, "RND V1, 15\nRND V2, 0")
			step(m, 2)
			Expect(m.V(1)).To(Equal(uint8(0x0B)))
			Expect(m.V(2)).To(Equal(uint8(0)))
		})

		It("should not consume random bytes for other instructions", func() {
			mockRandom.EXPECT().Uint8().Times(0)

			load(m, "LD V1, 1\nADD V1, 1")
			step(m, 2)
		})
	})

	Context("subroutines", func() {
		It("should return to the instruction after the CALL", func() {
			load(m, "CALL 516\nJP 516\nLD V3, 1\nRET")
			step(m, 3)
			Expect(m.PC()).To(Equal(uint16(0x202)))
			Expect(m.V(3)).To(Equal(uint8(1)))
		})

		It("should halt on the 17th nested CALL", func() {
			load(m, "CALL 512")
			step(m, emulator.StackSize)

			err := m.Step()
			Expect(err).To(MatchError(emulator.ErrStackOverflow))
			Expect(m.State()).To(Equal(emulator.Halted))
			Expect(m.Step()).To(MatchError(emulator.ErrHalted))
		})

		It("should halt on RET with an empty stack", func() {
			load(m, "RET")
			Expect(m.Step()).To(MatchError(emulator.ErrStackUnderflow))
		})
	})

	Context("drawing", func() {
		It("should report a collision when a sprite is drawn twice", func() {
			load(m, "LD F, V0\nDRW V0, V0, 5\nDRW V0, V0, 5")
			step(m, 2)
			Expect(m.V(chip8.FlagRegister)).To(Equal(uint8(0)))
			Expect(m.Display().Pixel(0, 0)).To(BeTrue())

			step(m, 1)
			Expect(m.V(chip8.FlagRegister)).To(Equal(uint8(1)))
			for y := range emulator.DisplayHeight {
				for x := range emulator.DisplayWidth {
					Expect(m.Display().Pixel(x, y)).To(BeFalse())
				}
			}
		})
	})

	Context("timers", func() {
		It("should decay to zero at 60 Hz and stay there", func() {
			load(m, "LD V1, 30\nLD DT, V1\nLD ST, V1\nJP 518")
			s := emulator.NewScheduler(m, emulator.SchedulerConfig{CyclesPerSecond: 700})

			Expect(s.Advance(250 * time.Millisecond)).To(Succeed())
			Expect(m.DelayTimer()).To(Equal(uint8(30 - 15)))
			Expect(m.SoundTimer()).To(Equal(uint8(30 - 15)))

			Expect(s.Advance(time.Second)).To(Succeed())
			Expect(m.DelayTimer()).To(BeZero())
			Expect(m.SoundTimer()).To(BeZero())
		})
	})

	Context("keypad", func() {
		It("should block LD Vx, K until a key is pressed", func() {
			load(m, "LD V2, K\nLD V3, 1")
			step(m, 10)
			Expect(m.State()).To(Equal(emulator.WaitingForKey))
			Expect(m.V(3)).To(BeZero())

			m.SetKey(0xC, true)
			step(m, 2)
			Expect(m.State()).To(Equal(emulator.Running))
			Expect(m.V(2)).To(Equal(uint8(0xC)))
			Expect(m.V(3)).To(Equal(uint8(1)))
		})
	})

	Context("invalid code", func() {
		It("should halt on the opcode 0xFFFF", func() {
			Expect(m.LoadROM([]byte{0xFF, 0xFF})).To(Succeed())

			err := m.Step()
			Expect(err).To(MatchError(chip8.ErrUnknownOpcode))
			Expect(err).To(MatchError(ContainSubstring("0xFFFF")))
			Expect(m.State()).To(Equal(emulator.Halted))
		})
	})
})
