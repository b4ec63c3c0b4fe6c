package stegmark

import (
	"fmt"
	"math"
	"sync"

	"github.com/zedseven/bch"
)

// maxCorrectableErrors bounds Codec.CorrectableErrors. Codewords grow quickly past it.
const maxCorrectableErrors uint8 = 3

// charECC wraps the 8-bit group of every character in its own BCH codeword.
// Characters stay aligned to codeword boundaries, so the marker can still be
// checked after each one.
type charECC struct {
	config *bch.EncodingConfig
}

var (
	eccMu      sync.Mutex
	eccConfigs = make(map[uint8]*bch.EncodingConfig)
)

// newCharECC returns nil when correctableErrors is 0, meaning error correction is off.
// Configurations are expensive to build, so they are shared per error count.
func newCharECC(correctableErrors uint8) (*charECC, error) {
	if correctableErrors == 0 {
		return nil, nil
	}
	if correctableErrors > maxCorrectableErrors {
		return nil, &InvalidFormatError{fmt.Sprintf("CorrectableErrors must be at most %d.", maxCorrectableErrors)}
	}

	eccMu.Lock()
	defer eccMu.Unlock()

	if config, ok := eccConfigs[correctableErrors]; ok {
		return &charECC{config: config}, nil
	}

	codeLength, err := bch.TotalBitsForConfig(int(bitsPerByte), int(correctableErrors))
	if err != nil {
		return nil, err
	}
	config, err := bch.CreateConfig(codeLength, int(correctableErrors))
	if err != nil {
		return nil, err
	}
	if config.StorageBits != int(bitsPerByte) {
		return nil, &InvalidFormatError{fmt.Sprintf("No BCH code stores exactly %d bits with %d correctable errors.",
			bitsPerByte, correctableErrors)}
	}
	eccConfigs[correctableErrors] = config

	return &charECC{config: config}, nil
}

// groupBits is the number of bit slots one character occupies.
func (e *charECC) groupBits() int {
	if e == nil {
		return int(bitsPerByte)
	}
	return e.config.CodeLength
}

// encode expands a bitstream of whole characters into one codeword per character.
func (e *charECC) encode(bits []uint8) ([]uint8, error) {
	if e == nil {
		return bits, nil
	}

	out := make([]uint8, 0, len(bits)/int(bitsPerByte)*e.config.CodeLength)
	for i := 0; i+int(bitsPerByte) <= len(bits); i += int(bitsPerByte) {
		group := bits[i : i+int(bitsPerByte)]
		codeword, err := bch.EncodeWithConfig(e.config, &group)
		if err != nil {
			return nil, err
		}
		out = append(out, codeword[:e.config.CodeLength]...)
	}

	return out, nil
}

// decode corrects a single codeword and returns the 8 data bits it carries,
// along with the number of bits that had to be flipped.
func (e *charECC) decode(codeword []uint8) ([]uint8, int, error) {
	if e == nil {
		return codeword, 0, nil
	}

	if !bch.IsDataCorrupted(e.config, codeword) {
		return codeword[e.config.CodeLength-e.config.StorageBits:], 0, nil
	}

	// The code is shortened, so an error may be located past the end of the codeword.
	// Such a correction does not yield a valid codeword and counts as too corrupt.
	m := int(math.Log2(float64(e.config.CodeLength))) + 1
	recd := make([]uint8, 1<<m-1)
	copy(recd, codeword)
	decoded, corrected, err := bch.Decode(e.config, &recd)
	if err != nil {
		return nil, 0, err
	}
	for _, b := range decoded[e.config.StorageBits:] {
		if b != 0 {
			return nil, 0, bch.DataTooCorruptError{}
		}
	}

	return decoded[:e.config.StorageBits], corrected, nil
}
