package program

// ISA is a struct that represents an Instruction Set Architecture.
type ISA struct {
	// name of the ISA.
	isaName string
	// map from source byte to the opcode of the instruction.
	byteToOpcode map[byte]Opcode
	// reverse map used when rendering programs back to source.
	opcodeToByte map[Opcode]byte
}

// NewISA creates an empty ISA.
func NewISA(name string) *ISA {
	return &ISA{
		isaName:      name,
		byteToOpcode: make(map[byte]Opcode),
		opcodeToByte: make(map[Opcode]byte),
	}
}

// Name returns the name of the ISA.
func (isa *ISA) Name() string {
	return isa.isaName
}

// Register a new instruction to the ISA.
func (isa *ISA) registerNewInst(symbol byte, op Opcode) {
	isa.byteToOpcode[symbol] = op
	isa.opcodeToByte[op] = symbol
}

// Lookup returns the opcode encoded by a source byte.
func (isa *ISA) Lookup(symbol byte) (Opcode, bool) {
	op, ok := isa.byteToOpcode[symbol]
	return op, ok
}

// Symbol returns the source byte of an opcode.
func (isa *ISA) Symbol(op Opcode) (byte, bool) {
	b, ok := isa.opcodeToByte[op]
	return b, ok
}

var defaultISA = newDefaultISA()

// DefaultISA returns the eight-instruction tape ISA.
func DefaultISA() *ISA {
	return defaultISA
}

func newDefaultISA() *ISA {
	isa := NewISA("Tape ISA")

	isa.registerNewInst('>', MoveRight)
	isa.registerNewInst('<', MoveLeft)
	isa.registerNewInst('+', Increment)
	isa.registerNewInst('-', Decrement)
	isa.registerNewInst('.', Write)
	isa.registerNewInst(',', Read)
	isa.registerNewInst('[', OpenLoop)
	isa.registerNewInst(']', CloseLoop)

	return isa
}
