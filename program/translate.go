package program

// Translate converts source bytes into a Program with every loop target
// resolved. Any byte outside the ISA is rejected; no partial Program is
// returned on error.
func Translate(source []byte) (Program, error) {
	return DefaultISA().Translate(source)
}

// TranslateString is Translate for source held in a string.
func TranslateString(source string) (Program, error) {
	return Translate([]byte(source))
}

// Translate converts source bytes using this ISA.
func (isa *ISA) Translate(source []byte) (Program, error) {
	// slots[i] stays nil for an open loop until its close loop is seen.
	slots := make([]*Instruction, 0, len(source))
	var pending []int

	for pos, b := range source {
		op, ok := isa.Lookup(b)
		if !ok {
			return nil, &LexError{Kind: InvalidInstruction, Position: pos, Byte: b}
		}

		switch op {
		case OpenLoop:
			pending = append(pending, pos)
			slots = append(slots, nil)
		case CloseLoop:
			if len(pending) == 0 {
				return nil, &LexError{Kind: UnmatchedCloseLoop, Position: pos}
			}
			open := pending[len(pending)-1]
			pending = pending[:len(pending)-1]

			slots[open] = &Instruction{Op: OpenLoop, Target: pos}
			slots = append(slots, &Instruction{Op: CloseLoop, Target: open})
		default:
			slots = append(slots, &Instruction{Op: op})
		}
	}

	if len(pending) > 0 {
		return nil, &LexError{Kind: UnmatchedOpenLoop, Position: pending[0]}
	}

	code := make(Program, len(slots))
	for i, slot := range slots {
		code[i] = *slot
	}

	return code, nil
}
