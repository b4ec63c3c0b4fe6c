package stegmark

import (
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
)

// HideConfig stores the configuration options for the Hide operation.
type HideConfig struct {
	// ImagePath is the path on disk to a supported image.
	ImagePath string
	// Message is the text to hide. It may be empty.
	Message string
	// MessagePath is the path on disk to a text file to hide instead of Message.
	MessagePath string
	// OutPath is the path on disk to write the output image. Defaults to "<image>_lsb<ext>".
	// Lossy or unsupported extensions are replaced with .png.
	OutPath string
	// Marker is appended to the message so Dig can find its end. Defaults to DefaultMarker.
	Marker string
	// PatternPath is the path on disk to the pattern file. Required for AlgoPattern.
	PatternPath string
	// Charset maps characters to bytes. Defaults to CharsetLatin1.
	Charset Charset
	// Algorithm is the algorithm to use in the operation. Defaults to AlgoSequential.
	Algorithm Algo
	// CorrectableErrors is the number of bit errors to be able to correct for per character.
	// Setting it to 0 disables ECC. Dig must use the same value.
	CorrectableErrors uint8
	// OutputLevel is the amount of output to provide.
	OutputLevel OutputLevel
}

// BuildPayload joins message and marker with no separator, after NFC-normalizing both so that
// composable characters fit a single byte where possible.
func BuildPayload(message, marker string) string {
	return norm.NFC.String(message) + norm.NFC.String(marker)
}

// Hide hides a message in the provided image on disk, and saves the result to a new image.
// It returns the path actually written, which may differ from OutPath in its extension.
func Hide(config *HideConfig) (string, error) {
	// Input validation
	if len(config.ImagePath) <= 0 {
		return "", &InvalidFormatError{"ImagePath is empty."}
	}
	if len(config.Message) > 0 && len(config.MessagePath) > 0 {
		return "", &InvalidFormatError{"Only one of Message and MessagePath may be set."}
	}
	marker := config.Marker
	if len(marker) <= 0 {
		marker = DefaultMarker
	}

	printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("Stegmark v%v.", Version()))
	printlnLvl(config.OutputLevel, OutputDebug, "This tool has been set to display debug output.")

	codec, err := newCodec(config.Charset, config.Algorithm, config.PatternPath, config.CorrectableErrors, config.OutputLevel)
	if err != nil {
		return "", err
	}

	message := config.Message
	if len(config.MessagePath) > 0 {
		printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("Reading the message from '%v'...", config.MessagePath))
		data, err := os.ReadFile(config.MessagePath)
		if err != nil {
			printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("Unable to read the file at '%v'.", config.MessagePath))
			return "", err
		}
		message = string(data)
	}

	printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("Loading the image from '%v'...", config.ImagePath))
	buf, info, err := LoadImage(config.ImagePath, config.OutputLevel)
	if err != nil {
		printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("Unable to load the image at '%v'!", config.ImagePath))
		return "", err
	}

	printlnLvl(config.OutputLevel, OutputInfo,
		fmt.Sprintf("Image info:\n\tDimensions: %dx%dpx\n\tFormat: %v\n\tChannels per pixel: %d\n\tCapacity: %d bits",
			info.W, info.H, info.Format, buf.ChannelsPerPix, buf.Capacity()))

	payload := BuildPayload(message, marker)
	printlnLvl(config.OutputLevel, OutputInfo, fmt.Sprintf("Payload: %d characters (%d bits), marker %q",
		len([]rune(payload)), len([]rune(payload))*int(bitsPerByte), marker))
	if codec.CorrectableErrors > 0 {
		printlnLvl(config.OutputLevel, OutputInfo,
			fmt.Sprintf("ECC: each character is a codeword correcting %d bit error(s).", codec.CorrectableErrors))
	}

	printlnLvl(config.OutputLevel, OutputSteps, "Encoding the message into the image...")
	if err = codec.Embed(buf, payload); err != nil {
		return "", err
	}

	outPath := config.OutPath
	if len(outPath) <= 0 {
		outPath = DefaultOutputPath(config.ImagePath)
	}
	if normalized := NormalizeOutputPath(outPath); normalized != outPath {
		printlnLvl(config.OutputLevel, OutputSteps,
			fmt.Sprintf("'%v' is not a lossless format, writing to '%v' instead.", outPath, normalized))
		outPath = normalized
	}

	printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("Writing the encoded image to '%v' now...", outPath))
	if err = WriteImage(buf, info, outPath, config.OutputLevel); err != nil {
		printlnLvl(config.OutputLevel, OutputSteps, "An error occurred while writing to the final image.")
		return "", err
	}

	printlnLvl(config.OutputLevel, OutputSteps, "All done! c:")

	return outPath, nil
}

// newCodec validates the shared options of Hide and Dig and builds the Codec they describe.
func newCodec(charset Charset, algo Algo, patternPath string, correctableErrors uint8, outputLevel OutputLevel) (Codec, error) {
	codec := Codec{Charset: charset, Algorithm: algo, CorrectableErrors: correctableErrors, OutputLevel: outputLevel}.withDefaults()
	if !codec.Charset.IsValid() {
		return Codec{}, &InvalidFormatError{"Charset is invalid."}
	}
	if !codec.Algorithm.IsValid() {
		return Codec{}, &InvalidFormatError{"Algorithm is invalid."}
	}
	if codec.CorrectableErrors > maxCorrectableErrors {
		return Codec{}, &InvalidFormatError{fmt.Sprintf("CorrectableErrors must be at most %d.", maxCorrectableErrors)}
	}
	if codec.Algorithm != AlgoPattern {
		return codec, nil
	}

	if len(patternPath) <= 0 {
		return Codec{}, &InvalidFormatError{"PatternPath is empty."}
	}
	printlnLvl(outputLevel, OutputSteps, "Loading up the pattern key...")
	seed, err := hashPatternFile(patternPath)
	if err != nil {
		printlnLvl(outputLevel, OutputSteps,
			fmt.Sprintf("Something went wrong while attempting to hash the pattern file '%v'.", patternPath))
		return Codec{}, err
	}
	printlnLvl(outputLevel, OutputInfo, "Pattern hash:", seed)
	codec.Seed = seed

	return codec, nil
}
