package stegmark

import (
	"fmt"

	"github.com/zedseven/stegmark/internal/algos"
)

// Algo selects the order in which bit slots are visited.
type Algo = algos.Algo

const (
	AlgoSequential = algos.AlgoSequential // Slots in pixel order, channels R, G, B.
	AlgoPattern    = algos.AlgoPattern    // A shuffled order derived from a seed.
)

// StringToAlgo parses an algorithm name, or returns an invalid Algo if it is not recognized.
func StringToAlgo(str string) Algo {
	return algos.StringToAlgo(str)
}

// Codec holds the options shared by Embed and Extract.
// Both sides must use the same Charset, Algorithm, Seed and CorrectableErrors.
// The zero value is usable and behaves like DefaultCodec.
type Codec struct {
	// Charset maps characters to bytes. Defaults to CharsetLatin1.
	Charset Charset
	// Algorithm decides the slot order. Defaults to AlgoSequential.
	Algorithm Algo
	// Seed feeds AlgoPattern and is ignored otherwise.
	Seed int64
	// CorrectableErrors is the number of bit errors each character can recover from.
	// Every character is stored as its own BCH codeword instead of 8 bits.
	// 0, the default, disables error correction.
	CorrectableErrors uint8
	// OutputLevel enables per-bit output at OutputDebug.
	OutputLevel OutputLevel
}

// DefaultCodec walks the slots linearly and uses Latin-1.
var DefaultCodec = Codec{Charset: CharsetLatin1, Algorithm: AlgoSequential}

// Embed hides payloadText in buf with DefaultCodec.
func Embed(buf *PixelBuffer, payloadText string) error {
	return DefaultCodec.Embed(buf, payloadText)
}

// Extract recovers the text hidden in buf ahead of marker with DefaultCodec.
func Extract(buf *PixelBuffer, marker string) (string, error) {
	return DefaultCodec.Extract(buf, marker)
}

func (c Codec) withDefaults() Codec {
	if c.Charset == CharsetUnknown {
		c.Charset = CharsetLatin1
	}
	if c.Algorithm == algos.AlgoUnknown {
		c.Algorithm = AlgoSequential
	}
	return c
}

func (c Codec) validate(buf *PixelBuffer) error {
	if buf == nil {
		return &InvalidFormatError{"The pixel buffer is nil."}
	}
	if !c.Charset.IsValid() {
		return &InvalidFormatError{"Charset is invalid."}
	}
	if !c.Algorithm.IsValid() {
		return &InvalidFormatError{"Algorithm is invalid."}
	}
	if c.CorrectableErrors > maxCorrectableErrors {
		return &InvalidFormatError{fmt.Sprintf("CorrectableErrors must be at most %d.", maxCorrectableErrors)}
	}
	return nil
}

func (c Codec) addressor(buf *PixelBuffer) (algos.Addressor, error) {
	return algos.AlgoAddressor(c.Algorithm, c.Seed, buf.Capacity())
}
