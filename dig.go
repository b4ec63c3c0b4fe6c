package stegmark

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Types

// DigConfig stores the configuration options for the Dig operation.
type DigConfig struct {
	ImagePath         string      // The path on disk to a supported image.
	Marker            string      // The marker the message was hidden with. Defaults to DefaultMarker.
	PatternPath       string      // The path on disk to the pattern file used in encoding.
	Charset           Charset     // The charset used in encoding.
	Algorithm         Algo        // The algorithm to use in the operation.
	CorrectableErrors uint8       // The per-character ECC strength used in encoding. 0 means none.
	OutputLevel       OutputLevel // The amount of output to provide.
}

// Primary method

// Dig extracts a message hidden by Hide from the provided image on disk.
// The configuration must perfectly match the one used in encoding in order to extract successfully.
func Dig(config DigConfig) (string, error) {
	// Input validation
	if len(config.ImagePath) <= 0 {
		return "", &InvalidFormatError{"ImagePath is empty."}
	}
	marker := config.Marker
	if len(marker) <= 0 {
		marker = DefaultMarker
	}

	printlnLvl(config.OutputLevel, OutputDebug, "This tool has been set to display debug output.")

	codec, err := newCodec(config.Charset, config.Algorithm, config.PatternPath, config.CorrectableErrors, config.OutputLevel)
	if err != nil {
		return "", err
	}

	printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("Loading the image from '%v'...", config.ImagePath))
	buf, info, err := LoadImage(config.ImagePath, config.OutputLevel)
	if err != nil {
		printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("Unable to load the image at '%v'!", config.ImagePath))
		return "", err
	}

	printlnLvl(config.OutputLevel, OutputInfo,
		fmt.Sprintf("Image info:\n\tDimensions: %dx%d px\n\tFormat: %v\n\tChannels per pixel: %d\n\tMaximum readable bits: %d",
			info.W, info.H, info.Format, buf.ChannelsPerPix, buf.Capacity()))

	printlnLvl(config.OutputLevel, OutputSteps, "Reading the message from the image...")
	message, err := codec.Extract(buf, norm.NFC.String(marker))
	if err != nil {
		return "", err
	}

	printlnLvl(config.OutputLevel, OutputInfo, fmt.Sprintf("Recovered %d characters.", len([]rune(message))))
	printlnLvl(config.OutputLevel, OutputSteps, "All done! c:")

	return message, nil
}
