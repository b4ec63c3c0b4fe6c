package stegmark

import (
	"bytes"
	"fmt"
)

// Pixel is one pixel's channel intensities, in R, G, B(, A) order.
type Pixel []uint8

// PixelBuffer is an image as an ordered sequence of pixels.
// The dimensions and channel count are fixed at construction.
type PixelBuffer struct {
	W, H           uint
	ChannelsPerPix uint8
	Pixels         []Pixel
}

// NewPixelBuffer returns a zeroed buffer of w*h pixels with 3 (RGB) or 4 (RGBA) channels each.
func NewPixelBuffer(w, h uint, channelsPerPix uint8) (*PixelBuffer, error) {
	if channelsPerPix != 3 && channelsPerPix != 4 {
		return nil, &InvalidFormatError{fmt.Sprintf("Pixels must have 3 or 4 channels: Provided %d.", channelsPerPix)}
	}

	// Backing store is one contiguous slice, each Pixel is a window into it
	pix := make([]uint8, w*h*uint(channelsPerPix))
	pixels := make([]Pixel, w*h)
	for i := range pixels {
		pixels[i] = pix[i*int(channelsPerPix) : (i+1)*int(channelsPerPix) : (i+1)*int(channelsPerPix)]
	}

	return &PixelBuffer{W: w, H: h, ChannelsPerPix: channelsPerPix, Pixels: pixels}, nil
}

// Capacity returns the number of bit slots available, three per pixel.
func (buf *PixelBuffer) Capacity() int64 {
	return int64(len(buf.Pixels)) * int64(payloadChannels)
}

// Clone returns a deep copy of the buffer.
func (buf *PixelBuffer) Clone() *PixelBuffer {
	c, _ := NewPixelBuffer(buf.W, buf.H, buf.ChannelsPerPix)
	for i := range buf.Pixels {
		copy(c.Pixels[i], buf.Pixels[i])
	}
	return c
}

// Equal reports whether both buffers have the same shape and identical channel values.
func (buf *PixelBuffer) Equal(other *PixelBuffer) bool {
	if buf.W != other.W || buf.H != other.H || buf.ChannelsPerPix != other.ChannelsPerPix ||
		len(buf.Pixels) != len(other.Pixels) {
		return false
	}
	for i := range buf.Pixels {
		if !bytes.Equal(buf.Pixels[i], other.Pixels[i]) {
			return false
		}
	}
	return true
}

func (buf *PixelBuffer) String() string {
	return fmt.Sprintf("{%dx%d px, %d channels}", buf.W, buf.H, buf.ChannelsPerPix)
}
