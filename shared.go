package stegmark

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
)

const (
	bitsPerByte     uint8  = 8
	payloadChannels uint8  = 3
	DefaultMarker   string = "xes"
	VersionMax      uint8  = 1
	VersionMid      uint8  = 0
	VersionMin      uint8  = 0
)

// Error types

type unknownColourModelError struct{}

func (e unknownColourModelError) Error() string {
	return "The colour model of the provided Image is unknown."
}

// InvalidFormatError is returned when a configuration value or argument is unusable.
type InvalidFormatError struct {
	ErrorDesc string
}

func (e *InvalidFormatError) Error() string {
	if len(e.ErrorDesc) > 0 {
		return e.ErrorDesc
	}
	return "The provided data is of an invalid format."
}

// CapacityError is returned when the payload needs more bit slots than the image has.
// It is raised before any pixel is modified.
type CapacityError struct {
	Required  int64 // Bits the payload needs.
	Available int64 // Bit slots in the buffer.
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("There is not enough space available to store the payload within the image: "+
		"%d bits required, %d bits available.", e.Required, e.Available)
}

// DecodeError is returned when an 8-bit group does not form a valid character,
// or when a character's codeword is too corrupt to correct.
type DecodeError struct {
	Offset  int64   // Index of the character within the hidden stream.
	Bits    []uint8 // The offending group or codeword.
	Charset Charset
	Err     error // The error correction failure, if any.
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("The codeword %v at character %d could not be corrected: %v", e.Bits, e.Offset, e.Err)
	}
	return fmt.Sprintf("The bit group %v at character %d is not a valid %v character.", e.Bits, e.Offset, e.Charset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InvalidCharError is returned when text to be hidden contains a character the charset cannot represent.
type InvalidCharError struct {
	Char     rune
	Position int // Byte offset within the text.
	Charset  Charset
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("The character %q (U+%04X) at offset %d cannot be represented in %v.",
		e.Char, e.Char, e.Position, e.Charset)
}

// NotFoundError is returned when the marker never shows up while reading the whole image.
type NotFoundError struct {
	Marker    string
	CharsRead int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No hidden message could be recovered: the marker %q was not found in %d characters.",
		e.Marker, e.CharsRead)
}

// Library methods

// Version returns the library version as a dotted string.
func Version() string {
	return fmt.Sprintf("%02d.%02d.%02d", VersionMax, VersionMid, VersionMin)
}

// Shared methods

func hashPatternFile(patternPath string) (int64, error) {
	f, err := os.Open(patternPath)
	if err != nil {
		return -1, err
	}
	defer f.Close()

	h := fnv.New64()
	if _, err = io.Copy(h, f); err != nil {
		return -1, err
	}

	return int64(h.Sum64()), nil
}

// PC = Pixel, Channel
func bitAddrToPC(addr int64) (pix int64, channel uint8) {
	pix = addr / int64(payloadChannels)
	channel = uint8(addr % int64(payloadChannels))
	return
}
