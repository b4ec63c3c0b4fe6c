package stegmark

import (
	"strings"

	"github.com/zedseven/binmani"
	"golang.org/x/text/encoding/charmap"
)

// Charset definitions

// Charset is the single-byte character set used to turn characters into 8-bit groups.
type Charset int

const (
	CharsetUnknown Charset = iota     // An unknown charset.
	CharsetLatin1  Charset = iota     // ISO-8859-1: code points 0-255.
	CharsetASCII   Charset = iota     // 7-bit ASCII: code points 0-127.
	maxCharsetVal  Charset = iota - 1 // The maximum charset value, used for validity checking.
)

// IsValid reports whether the charset is a known one.
func (cs Charset) IsValid() bool {
	return cs > CharsetUnknown && cs <= maxCharsetVal
}

func (cs Charset) String() string {
	switch cs {
	case CharsetLatin1:
		return "latin1"
	case CharsetASCII:
		return "ascii"
	default:
		return "<unknown>"
	}
}

// StringToCharset parses a charset name, or returns CharsetUnknown if it is not recognized.
func StringToCharset(str string) Charset {
	switch strings.ToLower(str) {
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return CharsetLatin1
	case "ascii", "us-ascii":
		return CharsetASCII
	default:
		return CharsetUnknown
	}
}

func (cs Charset) encodeRune(r rune) (byte, bool) {
	b, ok := charmap.ISO8859_1.EncodeRune(r)
	if !ok || (cs == CharsetASCII && b > 0x7f) {
		return 0, false
	}
	return b, true
}

func (cs Charset) decodeByte(b byte) (rune, bool) {
	if cs == CharsetASCII && b > 0x7f {
		return 0, false
	}
	return charmap.ISO8859_1.DecodeByte(b), true
}

// encodeText converts text to one byte per character.
func (cs Charset) encodeText(text string) ([]byte, error) {
	data := make([]byte, 0, len(text))
	for i, r := range text {
		b, ok := cs.encodeRune(r)
		if !ok {
			return nil, &InvalidCharError{Char: r, Position: i, Charset: cs}
		}
		data = append(data, b)
	}
	return data, nil
}

func (cs Charset) decodeText(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		r, _ := cs.decodeByte(b)
		sb.WriteRune(r)
	}
	return sb.String()
}

// Conversion methods

// EncodeTextToBits converts text to its 8-bit-per-character bitstream, most-significant bit first,
// using the Latin-1 charset.
func EncodeTextToBits(text string) ([]uint8, error) {
	return CharsetLatin1.EncodeTextToBits(text)
}

// DecodeBitsToChar converts a single 8-bit group back into its Latin-1 character.
func DecodeBitsToChar(bits []uint8) (rune, error) {
	return CharsetLatin1.DecodeBitsToChar(bits)
}

// EncodeTextToBits converts text to its 8-bit-per-character bitstream, most-significant bit first.
// Characters outside the charset are rejected with an InvalidCharError.
func (cs Charset) EncodeTextToBits(text string) ([]uint8, error) {
	data, err := cs.encodeText(text)
	if err != nil {
		return nil, err
	}
	return bytesToBits(data), nil
}

// DecodeBitsToChar converts a single 8-bit group (most-significant bit first) back into a character.
func (cs Charset) DecodeBitsToChar(bits []uint8) (rune, error) {
	b, ok := bitsToByte(bits)
	if !ok {
		return 0, &DecodeError{Offset: -1, Bits: bits, Charset: cs}
	}
	r, ok := cs.decodeByte(b)
	if !ok {
		return 0, &DecodeError{Offset: -1, Bits: bits, Charset: cs}
	}
	return r, nil
}

// Helper functions

func bytesToBits(data []byte) []uint8 {
	bits := make([]uint8, 0, len(data)*int(bitsPerByte))
	for _, b := range data {
		for j := uint8(0); j < bitsPerByte; j++ {
			bits = append(bits, uint8(binmani.ReadFrom(uint16(b), bitsPerByte-j-1, 1)))
		}
	}
	return bits
}

func bitsToByte(bits []uint8) (b byte, ok bool) {
	if len(bits) != int(bitsPerByte) {
		return 0, false
	}
	for j, bit := range bits {
		if bit > 1 {
			return 0, false
		}
		b = byte(binmani.WriteTo(uint16(b), bitsPerByte-uint8(j)-1, 1, uint16(bit)))
	}
	return b, true
}
