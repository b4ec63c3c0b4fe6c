package stegmark

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/zedseven/stegmark/internal/util"
)

// CapacityInfo reports how much text an image can hold.
type CapacityInfo struct {
	Pixels       int64 // Pixels in the image.
	Bits         int64 // Usable bit slots, three per pixel.
	Chars        int64 // Whole characters that fit, marker included.
	MessageChars int64 // Characters left for the message once the marker is accounted for.
}

func (c CapacityInfo) String() string {
	return fmt.Sprintf("%d px, %d bits, %d characters (%d for the message)", c.Pixels, c.Bits, c.Chars, c.MessageChars)
}

// NewCapacityInfo computes the capacity of buf for messages terminated by marker.
func NewCapacityInfo(buf *PixelBuffer, marker string) CapacityInfo {
	bits := buf.Capacity()
	chars := bits / int64(bitsPerByte)
	markerChars := int64(utf8.RuneCountInString(norm.NFC.String(marker)))
	return CapacityInfo{
		Pixels:       int64(len(buf.Pixels)),
		Bits:         bits,
		Chars:        chars,
		MessageChars: util.Max(0, chars-markerChars),
	}
}

// ImageCapacity loads the image on disk and reports its capacity for messages terminated by marker.
func ImageCapacity(imgPath, marker string, outputLevel OutputLevel) (CapacityInfo, error) {
	if len(imgPath) <= 0 {
		return CapacityInfo{}, &InvalidFormatError{"ImagePath is empty."}
	}
	if len(marker) <= 0 {
		marker = DefaultMarker
	}

	printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Loading the image from '%v'...", imgPath))
	buf, info, err := LoadImage(imgPath, outputLevel)
	if err != nil {
		return CapacityInfo{}, err
	}
	printlnLvl(outputLevel, OutputInfo, "Image info:", info)

	return NewCapacityInfo(buf, marker), nil
}
