package stegmark

import (
	"github.com/zedseven/binmani"
)

// Embed writes the bitstream of payloadText into the least-significant bits of channels 0-2 of buf,
// in place. If the bitstream does not fit, a CapacityError is returned and buf is left untouched.
// Slots past the end of the bitstream, alpha channels, and the upper seven bits of every channel
// are never modified. With CorrectableErrors set, each character takes a whole BCH codeword.
func (c Codec) Embed(buf *PixelBuffer, payloadText string) error {
	c = c.withDefaults()
	if err := c.validate(buf); err != nil {
		return err
	}

	ecc, err := newCharECC(c.CorrectableErrors)
	if err != nil {
		return err
	}

	bits, err := c.Charset.EncodeTextToBits(payloadText)
	if err != nil {
		return err
	}
	if bits, err = ecc.encode(bits); err != nil {
		return err
	}

	available := buf.Capacity()
	required := int64(len(bits))
	if required > available {
		return &CapacityError{Required: required, Available: available}
	}

	pos, err := c.addressor(buf)
	if err != nil {
		return err
	}

	for _, bit := range bits {
		addr, err := pos()
		if err != nil {
			return &CapacityError{Required: required, Available: available}
		}
		p, ch := bitAddrToPC(addr)

		printfLvl(c.OutputLevel, OutputDebug, "addr: %d, pixel: %d, channel: %d, writing %d, before: %#08b - %v\n",
			addr, p, ch, bit, buf.Pixels[p][ch], buf.Pixels[p])

		buf.Pixels[p][ch] = uint8(binmani.WriteTo(uint16(buf.Pixels[p][ch]), 0, 1, uint16(bit)))
	}

	return nil
}
