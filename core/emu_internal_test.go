package core

import (
	"errors"
	"io"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/bfsim/program"
)

var _ = Describe("InstEmulator", func() {
	var (
		mockCtrl    *gomock.Controller
		mockConsole *MockConsole
		ie          instEmulator
		s           machineState
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockConsole = NewMockConsole(mockCtrl)
		ie = instEmulator{console: mockConsole}
		s = machineState{
			PC:   0,
			Tape: make([]byte, 0),
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	run := func(op program.Opcode, target int) error {
		return ie.RunInst(program.Instruction{Op: op, Target: target}, &s)
	}

	Context("when moving the cursor", func() {
		It("should move right without touching the tape", func() {
			Expect(run(program.MoveRight, 0)).To(Succeed())

			Expect(s.Cursor).To(Equal(1))
			Expect(s.PC).To(Equal(1))
			Expect(s.Tape).To(BeEmpty())
		})

		It("should move left", func() {
			s.Cursor = 3

			Expect(run(program.MoveLeft, 0)).To(Succeed())

			Expect(s.Cursor).To(Equal(2))
			Expect(s.PC).To(Equal(1))
		})

		It("should fail to move left of cell 0", func() {
			s.PC = 7
			s.Tape = []byte{9, 8}

			err := run(program.MoveLeft, 0)

			Expect(errors.Is(err, ErrPointerUnderflow)).To(BeTrue())
			var runErr *RunError
			Expect(errors.As(err, &runErr)).To(BeTrue())
			Expect(runErr.Position).To(Equal(7))
			Expect(s.Cursor).To(Equal(0))
			Expect(s.PC).To(Equal(7))
			Expect(s.Tape).To(Equal([]byte{9, 8}))
		})

		It("should fail to move right past the largest index", func() {
			s.Cursor = maxCursor
			s.PC = 2

			err := run(program.MoveRight, 0)

			Expect(errors.Is(err, ErrPointerOverflow)).To(BeTrue())
			Expect(err).To(MatchError("pointer overflow at 2"))
			Expect(s.Cursor).To(Equal(maxCursor))
			Expect(s.PC).To(Equal(2))
		})
	})

	Context("when changing cells", func() {
		It("should grow the tape on increment", func() {
			s.Cursor = 2

			Expect(run(program.Increment, 0)).To(Succeed())

			Expect(s.Tape).To(Equal([]byte{0, 0, 1}))
			Expect(s.PC).To(Equal(1))
		})

		It("should wrap 255 to 0", func() {
			s.Tape = []byte{255}

			Expect(run(program.Increment, 0)).To(Succeed())

			Expect(s.Tape).To(Equal([]byte{0}))
		})

		It("should wrap 0 to 255", func() {
			Expect(run(program.Decrement, 0)).To(Succeed())

			Expect(s.Tape).To(Equal([]byte{255}))
		})

		It("should keep existing cells when growing", func() {
			s.Tape = []byte{4, 5}
			s.Cursor = 4

			Expect(run(program.Decrement, 0)).To(Succeed())

			Expect(s.Tape).To(Equal([]byte{4, 5, 0, 0, 255}))
		})
	})

	Context("when doing console i/o", func() {
		It("should write the current cell", func() {
			s.Tape = []byte{0, 65}
			s.Cursor = 1
			mockConsole.EXPECT().Put(byte(65)).Return(nil)

			Expect(run(program.Write, 0)).To(Succeed())

			Expect(s.PC).To(Equal(1))
		})

		It("should write zero from a fresh cell", func() {
			s.Cursor = 3
			mockConsole.EXPECT().Put(byte(0)).Return(nil)

			Expect(run(program.Write, 0)).To(Succeed())

			Expect(s.Tape).To(HaveLen(4))
		})

		It("should surface write failures", func() {
			broken := errors.New("broken pipe")
			s.PC = 4
			mockConsole.EXPECT().Put(gomock.Any()).Return(broken)

			err := run(program.Write, 0)

			Expect(errors.Is(err, ErrIO)).To(BeTrue())
			Expect(errors.Is(err, broken)).To(BeTrue())
			Expect(s.PC).To(Equal(4))
		})

		It("should read one byte into the current cell", func() {
			s.Cursor = 1
			mockConsole.EXPECT().Get().Return(byte('x'), nil)

			Expect(run(program.Read, 0)).To(Succeed())

			Expect(s.Tape).To(Equal([]byte{0, 'x'}))
			Expect(s.PC).To(Equal(1))
		})

		It("should treat end of input as an i/o error", func() {
			s.Tape = []byte{3}
			mockConsole.EXPECT().Get().Return(byte(0), io.EOF)

			err := run(program.Read, 0)

			Expect(errors.Is(err, ErrIO)).To(BeTrue())
			Expect(errors.Is(err, io.EOF)).To(BeTrue())
			Expect(s.Tape).To(Equal([]byte{3}))
			Expect(s.PC).To(Equal(0))
		})
	})

	Context("when running loops", func() {
		It("should jump to the close loop on a zero cell", func() {
			s.PC = 1

			Expect(run(program.OpenLoop, 5)).To(Succeed())

			Expect(s.PC).To(Equal(5))
			Expect(s.Tape).To(Equal([]byte{0}))
		})

		It("should enter the loop on a non-zero cell", func() {
			s.PC = 1
			s.Tape = []byte{2}

			Expect(run(program.OpenLoop, 5)).To(Succeed())

			Expect(s.PC).To(Equal(2))
		})

		It("should jump back to the open loop on a non-zero cell", func() {
			s.PC = 5
			s.Tape = []byte{1}

			Expect(run(program.CloseLoop, 1)).To(Succeed())

			Expect(s.PC).To(Equal(1))
		})

		It("should fall through on a zero cell", func() {
			s.PC = 5
			s.Cursor = 2

			Expect(run(program.CloseLoop, 1)).To(Succeed())

			Expect(s.PC).To(Equal(6))
			Expect(s.Tape).To(Equal([]byte{0, 0, 0}))
		})
	})

	It("should panic on an unknown opcode", func() {
		Expect(func() {
			_ = run(program.Opcode(99), 0)
		}).To(Panic())
	})
})
