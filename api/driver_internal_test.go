package api

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/program"
)

type stalledEngine struct {
	sim.Engine
}

func (stalledEngine) Run() error {
	return errors.New("engine stalled")
}

var _ = Describe("Driver", func() {
	var (
		out    *bytes.Buffer
		driver Driver
	)

	build := func(input string) {
		out = new(bytes.Buffer)
		driver = DriverBuilder{}.
			WithEngine(sim.NewSerialEngine()).
			WithFreq(1 * sim.GHz).
			WithConsole(core.NewConsole(bytes.NewReader([]byte(input)), out)).
			Build("Driver")
	}

	mapSource := func(src string) {
		code, err := program.TranslateString(src)
		Expect(err).NotTo(HaveOccurred())
		driver.MapProgram(code)
	}

	It("should name the core after the driver", func() {
		build("")

		impl := driver.(*driverImpl)
		Expect(impl.core.Name()).To(Equal("Driver.Core"))
	})

	It("should create its own engine when none is given", func() {
		driver = DriverBuilder{}.
			WithConsole(core.NewConsole(bytes.NewReader(nil), new(bytes.Buffer))).
			Build("Driver")

		Expect(driver.(*driverImpl).engine).NotTo(BeNil())
	})

	It("should panic when run without a program", func() {
		build("")

		Expect(func() { _ = driver.Run() }).To(Panic())
	})

	It("should run a program and flush its output", func() {
		build("")
		mapSource("++++++[>++++++++<-]>+.")

		Expect(driver.Run()).To(Succeed())

		Expect(out.String()).To(Equal("1"))
		Expect(driver.Machine().Done()).To(BeTrue())
	})

	It("should match a direct run of the same program", func() {
		src := "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."
		code, err := program.TranslateString(src)
		Expect(err).NotTo(HaveOccurred())

		direct := new(bytes.Buffer)
		m := core.NewMachine(code, core.NewConsole(bytes.NewReader(nil), direct))
		Expect(m.Run()).To(Succeed())

		build("")
		driver.MapProgram(code)
		Expect(driver.Run()).To(Succeed())

		Expect(out.Bytes()).To(Equal(direct.Bytes()))
		Expect(driver.Machine().Steps()).To(Equal(m.Steps()))
		Expect(driver.Machine().Tape()).To(Equal(m.Tape()))
	})

	It("should return the runtime error and keep partial output", func() {
		build("a")
		mapSource(",.,.")

		err := driver.Run()

		Expect(errors.Is(err, core.ErrIO)).To(BeTrue())
		Expect(out.String()).To(Equal("a"))
		Expect(driver.Machine().PC()).To(Equal(2))
	})

	It("should flush partial output when the engine fails", func() {
		out = new(bytes.Buffer)
		driver = DriverBuilder{}.
			WithEngine(stalledEngine{Engine: sim.NewSerialEngine()}).
			WithConsole(core.NewConsole(bytes.NewReader(nil), out)).
			Build("Driver")
		mapSource("++++++++[>++++++++<-]>+.>")

		impl := driver.(*driverImpl)
		for impl.core.Machine().PC() < 24 {
			Expect(impl.core.Tick()).To(BeTrue())
		}
		Expect(out.Len()).To(BeZero())

		err := driver.Run()

		Expect(err).To(MatchError("engine stalled"))
		Expect(out.String()).To(Equal("A"))
	})
})
