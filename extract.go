package stegmark

import (
	"github.com/zedseven/binmani"
)

// Extract reads the least-significant bits of channels 0-2 of buf, decodes them eight at a time,
// and stops at the first point where the most recent characters spell marker. The text before the
// marker is returned. If the buffer runs out first, a NotFoundError is returned; a group that is not
// a valid character aborts with a DecodeError. buf is not modified.
// With CorrectableErrors set, each character is read as a BCH codeword and corrected first.
func (c Codec) Extract(buf *PixelBuffer, marker string) (string, error) {
	c = c.withDefaults()
	if err := c.validate(buf); err != nil {
		return "", err
	}
	if len(marker) <= 0 {
		return "", &InvalidFormatError{"The marker is empty."}
	}
	if _, err := c.Charset.encodeText(marker); err != nil {
		return "", err
	}
	markerChars := []rune(marker)

	ecc, err := newCharECC(c.CorrectableErrors)
	if err != nil {
		return "", err
	}

	pos, err := c.addressor(buf)
	if err != nil {
		return "", err
	}

	window := newMarkerWindow(len(markerChars))
	message := make([]rune, 0, 64)
	group := make([]uint8, ecc.groupBits())
	for offset := int64(0); ; offset++ {
		for j := range group {
			addr, err := pos()
			if err != nil {
				// Out of slots, any partial group is dropped
				return "", &NotFoundError{Marker: marker, CharsRead: offset}
			}
			p, ch := bitAddrToPC(addr)
			group[j] = uint8(binmani.ReadFrom(uint16(buf.Pixels[p][ch]), 0, 1))
		}

		data, corrected, err := ecc.decode(group)
		if err != nil {
			return "", &DecodeError{Offset: offset, Bits: append([]uint8(nil), group...), Charset: c.Charset, Err: err}
		}
		if corrected > 0 {
			printfLvl(c.OutputLevel, OutputInfo, "Corrected %d bit(s) in character %d.\n", corrected, offset)
		}

		r, err := c.Charset.DecodeBitsToChar(data)
		if err != nil {
			if derr, ok := err.(*DecodeError); ok {
				derr.Offset = offset
				derr.Bits = append([]uint8(nil), data...)
			}
			return "", err
		}

		printfLvl(c.OutputLevel, OutputDebug, "char %d: %#08b %q\n", offset, r, r)

		message = append(message, r)
		window.push(r)
		if window.matches(markerChars) {
			return string(message[:len(message)-len(markerChars)]), nil
		}
	}
}

// markerWindow is a ring of the last len(marker) decoded characters.
type markerWindow struct {
	chars  []rune
	next   int
	filled bool
}

func newMarkerWindow(size int) *markerWindow {
	return &markerWindow{chars: make([]rune, size)}
}

func (w *markerWindow) push(r rune) {
	w.chars[w.next] = r
	w.next++
	if w.next == len(w.chars) {
		w.next = 0
		w.filled = true
	}
}

func (w *markerWindow) matches(marker []rune) bool {
	if !w.filled || len(marker) != len(w.chars) {
		return false
	}
	for i, r := range marker {
		if w.chars[(w.next+i)%len(w.chars)] != r {
			return false
		}
	}
	return true
}
