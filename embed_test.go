package stegmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBuffer returns a buffer whose channel values follow a fixed, varied pattern.
// With evenOnly set every value has a clear least-significant bit.
func newTestBuffer(t *testing.T, w, h uint, channels uint8, evenOnly bool) *PixelBuffer {
	t.Helper()
	buf, err := NewPixelBuffer(w, h, channels)
	require.NoError(t, err)
	for i, p := range buf.Pixels {
		for c := range p {
			v := uint8(i*37 + c*11 + 5)
			if evenOnly {
				v &^= 1
			}
			p[c] = v
		}
	}
	return buf
}

func TestNewPixelBuffer(t *testing.T) {
	buf, err := NewPixelBuffer(2, 3, 4)
	require.NoError(t, err)
	assert.Len(t, buf.Pixels, 6)
	assert.Len(t, buf.Pixels[5], 4)
	assert.Equal(t, int64(18), buf.Capacity())

	var formatErr *InvalidFormatError
	_, err = NewPixelBuffer(2, 2, 1)
	assert.ErrorAs(t, err, &formatErr)
	_, err = NewPixelBuffer(2, 2, 5)
	assert.ErrorAs(t, err, &formatErr)
}

func TestPixelBufferCloneIsDeep(t *testing.T) {
	buf := newTestBuffer(t, 3, 3, 3, false)
	c := buf.Clone()
	require.True(t, buf.Equal(c))

	c.Pixels[4][1]++
	assert.False(t, buf.Equal(c))
}

func TestEmbedSmallImage(t *testing.T) {
	buf, err := NewPixelBuffer(2, 2, 3)
	require.NoError(t, err)

	require.NoError(t, Embed(buf, BuildPayload("", "x")))

	// 'x' is 01111000
	assert.Equal(t, Pixel{0, 1, 1}, buf.Pixels[0])
	assert.Equal(t, Pixel{1, 1, 0}, buf.Pixels[1])
	assert.Equal(t, Pixel{0, 0, 0}, buf.Pixels[2])
	assert.Equal(t, Pixel{0, 0, 0}, buf.Pixels[3])

	message, err := Extract(buf, "x")
	require.NoError(t, err)
	assert.Equal(t, "", message)
}

func TestEmbedTooLargeLeavesBufferUntouched(t *testing.T) {
	buf := newTestBuffer(t, 2, 2, 3, false)
	before := buf.Clone()

	err := Embed(buf, BuildPayload("hi", "x"))
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, int64(24), capErr.Required)
	assert.Equal(t, int64(12), capErr.Available)
	assert.True(t, before.Equal(buf))
}

func TestEmbedCapacityBoundary(t *testing.T) {
	// 8 pixels * 3 slots = 24 bits = exactly three characters
	buf := newTestBuffer(t, 8, 1, 3, false)
	require.NoError(t, Embed(buf, "abc"))

	buf = newTestBuffer(t, 8, 1, 3, false)
	before := buf.Clone()
	var capErr *CapacityError
	require.ErrorAs(t, Embed(buf, "abcd"), &capErr)
	assert.Equal(t, int64(32), capErr.Required)
	assert.True(t, before.Equal(buf))
}

func TestEmbedOnlyTouchesPayloadBits(t *testing.T) {
	for _, channels := range []uint8{3, 4} {
		buf := newTestBuffer(t, 4, 4, channels, false)
		before := buf.Clone()

		bits, err := EncodeTextToBits("hi")
		require.NoError(t, err)
		require.NoError(t, Embed(buf, "hi"))

		for p := range buf.Pixels {
			for c := range buf.Pixels[p] {
				got, orig := buf.Pixels[p][c], before.Pixels[p][c]
				slot := p*int(payloadChannels) + c
				if c >= int(payloadChannels) || slot >= len(bits) {
					assert.Equal(t, orig, got, "pixel %d channel %d", p, c)
					continue
				}
				assert.Equal(t, orig>>1, got>>1, "upper bits of pixel %d channel %d", p, c)
				assert.Equal(t, bits[slot], got&1, "payload bit of pixel %d channel %d", p, c)
			}
		}
	}
}

func TestEmbedRejectsBadInput(t *testing.T) {
	buf := newTestBuffer(t, 4, 4, 3, false)
	before := buf.Clone()

	var charErr *InvalidCharError
	assert.ErrorAs(t, Embed(buf, "€"+DefaultMarker), &charErr)
	assert.True(t, before.Equal(buf))

	var formatErr *InvalidFormatError
	assert.ErrorAs(t, Embed(nil, "x"), &formatErr)
	assert.ErrorAs(t, Codec{Charset: Charset(9)}.Embed(buf, "x"), &formatErr)
	assert.ErrorAs(t, Codec{Algorithm: Algo(9)}.Embed(buf, "x"), &formatErr)
}
