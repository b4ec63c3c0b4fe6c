package stegmark

import (
	"fmt"
	"strings"
)

// OutputLevel controls how much progress information the operations print.
type OutputLevel int

const (
	OutputNothing OutputLevel = iota // Print nothing.
	OutputSteps                      // Print each step as it happens.
	OutputInfo                       // Also print information about the image and payload.
	OutputDebug                      // Also print per-bit debugging output.
)

func (lvl OutputLevel) String() string {
	switch lvl {
	case OutputNothing:
		return "nothing"
	case OutputSteps:
		return "steps"
	case OutputInfo:
		return "info"
	case OutputDebug:
		return "debug"
	default:
		return "<unknown>"
	}
}

// StringToOutputLevel parses a level name, falling back to OutputSteps.
func StringToOutputLevel(str string) OutputLevel {
	switch strings.ToLower(str) {
	case "nothing", "quiet":
		return OutputNothing
	case "info":
		return OutputInfo
	case "debug":
		return OutputDebug
	default:
		return OutputSteps
	}
}

func printlnLvl(outputLevel, minLevel OutputLevel, a ...interface{}) {
	if outputLevel >= minLevel {
		fmt.Println(a...)
	}
}

func printfLvl(outputLevel, minLevel OutputLevel, format string, a ...interface{}) {
	if outputLevel >= minLevel {
		fmt.Printf(format, a...)
	}
}
