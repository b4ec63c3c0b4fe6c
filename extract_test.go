package stegmark

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedExtractRoundTrip(t *testing.T) {
	messages := []string{
		"",
		"Hello world!",
		"café au lait, ½ price",
		"line one\nline two\ttabbed",
		strings.Repeat("a", 90),
	}

	for _, channels := range []uint8{3, 4} {
		for _, message := range messages {
			buf := newTestBuffer(t, 16, 16, channels, false)
			require.NoError(t, Embed(buf, BuildPayload(message, DefaultMarker)))

			got, err := Extract(buf, DefaultMarker)
			require.NoError(t, err)
			assert.Equal(t, message, got)
		}
	}
}

func TestExtractLeavesBufferUntouched(t *testing.T) {
	buf := newTestBuffer(t, 8, 8, 4, false)
	require.NoError(t, Embed(buf, BuildPayload("quiet", "::")))
	before := buf.Clone()

	_, err := Extract(buf, "::")
	require.NoError(t, err)
	assert.True(t, before.Equal(buf))
}

func TestExtractStopsAtFirstMarker(t *testing.T) {
	buf := newTestBuffer(t, 16, 16, 3, false)
	require.NoError(t, Embed(buf, BuildPayload("fooxesbar", "xes")))

	got, err := Extract(buf, "xes")
	require.NoError(t, err)
	assert.Equal(t, "foo", got)
}

func TestExtractWithoutPayload(t *testing.T) {
	buf := newTestBuffer(t, 16, 16, 3, true)

	_, err := Extract(buf, DefaultMarker)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, DefaultMarker, notFound.Marker)
	assert.Equal(t, int64(96), notFound.CharsRead)
}

func TestExtractWrongMarker(t *testing.T) {
	buf := newTestBuffer(t, 16, 16, 3, true)
	require.NoError(t, Embed(buf, BuildPayload("secret", "xes")))

	_, err := Extract(buf, "zzz")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestExtractMarkerLongerThanImage(t *testing.T) {
	// 12 slots only hold one whole character
	buf, err := NewPixelBuffer(2, 2, 3)
	require.NoError(t, err)
	require.NoError(t, Embed(buf, "x"))

	_, err = Extract(buf, "xx")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(1), notFound.CharsRead)
}

func TestExtractDecodeError(t *testing.T) {
	buf, err := NewPixelBuffer(4, 4, 3)
	require.NoError(t, err)
	for _, p := range buf.Pixels {
		p[0], p[1], p[2] = 0xff, 0xff, 0xff
	}

	_, err = Codec{Charset: CharsetASCII}.Extract(buf, DefaultMarker)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, int64(0), decErr.Offset)
	assert.Equal(t, []uint8{1, 1, 1, 1, 1, 1, 1, 1}, decErr.Bits)
}

func TestExtractRejectsBadMarker(t *testing.T) {
	buf := newTestBuffer(t, 4, 4, 3, false)

	var formatErr *InvalidFormatError
	_, err := Extract(buf, "")
	assert.ErrorAs(t, err, &formatErr)

	var charErr *InvalidCharError
	_, err = Extract(buf, "€")
	assert.ErrorAs(t, err, &charErr)

	_, err = Extract(nil, DefaultMarker)
	assert.ErrorAs(t, err, &formatErr)
}

func TestPatternRoundTrip(t *testing.T) {
	codec := Codec{Algorithm: AlgoPattern, Seed: 1234}
	buf := newTestBuffer(t, 16, 16, 4, true)
	require.NoError(t, codec.Embed(buf, BuildPayload("scattered about", DefaultMarker)))

	got, err := codec.Extract(buf, DefaultMarker)
	require.NoError(t, err)
	assert.Equal(t, "scattered about", got)

	// The sequential walk does not see the message
	got, err = Extract(buf, DefaultMarker)
	if err != nil {
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	} else {
		assert.NotEqual(t, "scattered about", got)
	}
}

func TestMarkerWindow(t *testing.T) {
	marker := []rune("abc")
	w := newMarkerWindow(len(marker))

	for _, r := range "xab" {
		w.push(r)
		assert.False(t, w.matches(marker))
	}
	w.push('c')
	assert.True(t, w.matches(marker))
	w.push('a')
	assert.False(t, w.matches(marker))
	w.push('b')
	w.push('c')
	assert.True(t, w.matches(marker))
}
