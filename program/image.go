package program

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ImageMagic tags every compiled program image.
const ImageMagic = "bfsim"

// ImageVersion is the current image format version.
const ImageVersion = 1

// image is the on-disk form of a compiled Program.
type image struct {
	Magic        string             `cbor:"1,keyasint"`
	Version      int                `cbor:"2,keyasint"`
	Instructions []imageInstruction `cbor:"3,keyasint"`
}

type imageInstruction struct {
	_      struct{} `cbor:",toarray"`
	Op     Opcode
	Target int
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("program: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalImage serializes a Program to canonical CBOR bytes.
func MarshalImage(code Program) ([]byte, error) {
	img := image{
		Magic:        ImageMagic,
		Version:      ImageVersion,
		Instructions: make([]imageInstruction, len(code)),
	}

	for i, inst := range code {
		img.Instructions[i] = imageInstruction{Op: inst.Op, Target: inst.Target}
	}

	return cborEncMode.Marshal(img)
}

// UnmarshalImage deserializes and validates a Program from CBOR bytes.
func UnmarshalImage(data []byte) (Program, error) {
	var img image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("program: unmarshal image: %w", err)
	}

	if img.Magic != ImageMagic {
		return nil, fmt.Errorf("program: not a program image (magic %q)", img.Magic)
	}

	if img.Version != ImageVersion {
		return nil, fmt.Errorf("program: unsupported image version %d", img.Version)
	}

	code := make(Program, len(img.Instructions))
	for i, inst := range img.Instructions {
		code[i] = Instruction{Op: inst.Op, Target: inst.Target}
	}

	if err := code.Validate(); err != nil {
		return nil, fmt.Errorf("program: invalid image: %w", err)
	}

	return code, nil
}
