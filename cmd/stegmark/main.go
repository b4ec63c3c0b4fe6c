package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/zedseven/stegmark"
	"github.com/zedseven/stegmark/internal/config"
)

type options struct {
	dig        bool
	capacity   bool
	imgPath    string
	message    string
	filePath   string
	outPath    string
	configPath string
	version    bool
}

// newFlagSet declares every command line flag. The ones that can also come from the
// configuration file are only read back through applyFlags.
func newFlagSet(name string, opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.BoolVar(&opts.dig, "dig", false, "Whether to extract a message instead of hiding one")
	fs.BoolVar(&opts.capacity, "capacity", false, "Whether to only report how much text the image can hold")
	fs.StringVar(&opts.imgPath, "img", "", "The filepath to the image on disk")
	fs.StringVar(&opts.message, "msg", "", "The message to hide")
	fs.StringVar(&opts.filePath, "file", "", "The filepath to a text file to hide instead of -msg")
	fs.StringVar(&opts.outPath, "out", "", "The filepath to write the steg image to (default <img>_lsb.<ext>, lossy formats become .png)")
	fs.StringVar(&opts.configPath, "config", "", "The filepath to a YAML file with defaults for the options below")
	fs.String("marker", stegmark.DefaultMarker, "The marker appended to the message to find its end")
	fs.String("charset", "latin1", "The character set to use (latin1, ascii)")
	fs.String("algo", "sequential", "The order to visit bits in (sequential, pattern)")
	fs.String("pattern", "", "The filepath to the file used for the pattern hash")
	fs.Uint("ecc", 0, "The number of bit errors to correct per character (0 disables ECC)")
	fs.String("v", "steps", "The amount of output (nothing, steps, info, debug)")
	fs.BoolVar(&opts.version, "version", false, "Print the version and exit")
	return fs
}

// applyFlags overrides conf with the flags that were given explicitly on fs.
func applyFlags(conf *config.Config, fs *flag.FlagSet) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "marker":
			conf.Marker = f.Value.String()
		case "charset":
			conf.Charset = f.Value.String()
		case "algo":
			conf.Algorithm = f.Value.String()
		case "pattern":
			conf.PatternPath = f.Value.String()
		case "ecc":
			ecc := f.Value.(flag.Getter).Get().(uint)
			if ecc > math.MaxUint8 {
				err = fmt.Errorf("-ecc %d is out of range", ecc)
				return
			}
			conf.CorrectableErrors = uint8(ecc)
		case "v":
			conf.OutputLevel = f.Value.String()
		}
	})
	return err
}

// Program entry point

func main() {
	var opts options
	fs := newFlagSet(os.Args[0], &opts)
	_ = fs.Parse(os.Args[1:])

	if opts.version {
		fmt.Println(stegmark.Version())
		return
	}
	if len(opts.imgPath) <= 0 {
		fs.PrintDefaults()
		return
	}

	conf := config.Default()
	if len(opts.configPath) > 0 {
		var err error
		if conf, err = config.LoadConfig(opts.configPath); err != nil {
			fatal("Unable to load the configuration:", err)
		}
	}
	if err := applyFlags(conf, fs); err != nil {
		fatal("Invalid flag:", err)
	}

	cs := stegmark.StringToCharset(conf.Charset)
	if !cs.IsValid() {
		fatal("Unknown charset:", errors.New(conf.Charset))
	}
	alg := stegmark.StringToAlgo(conf.Algorithm)
	if !alg.IsValid() {
		fatal("Unknown algorithm:", errors.New(conf.Algorithm))
	}
	outputLevel := stegmark.StringToOutputLevel(conf.OutputLevel)

	switch {
	case opts.capacity:
		info, err := stegmark.ImageCapacity(opts.imgPath, conf.Marker, outputLevel)
		if err != nil {
			fatal("Unable to read the image capacity:", err)
		}
		fmt.Println("Capacity:", info)
	case opts.dig:
		hidden, err := stegmark.Dig(stegmark.DigConfig{
			ImagePath:         opts.imgPath,
			Marker:            conf.Marker,
			PatternPath:       conf.PatternPath,
			Charset:           cs,
			Algorithm:         alg,
			CorrectableErrors: conf.CorrectableErrors,
			OutputLevel:       outputLevel,
		})
		var notFound *stegmark.NotFoundError
		if errors.As(err, &notFound) {
			fatal("Something went wrong! Please try again.", err)
		} else if err != nil {
			fatal("Unable to dig the message out:", err)
		}
		fmt.Println("Hidden message:", hidden)
	default:
		written, err := stegmark.Hide(&stegmark.HideConfig{
			ImagePath:         opts.imgPath,
			Message:           opts.message,
			MessagePath:       opts.filePath,
			OutPath:           opts.outPath,
			Marker:            conf.Marker,
			PatternPath:       conf.PatternPath,
			Charset:           cs,
			Algorithm:         alg,
			CorrectableErrors: conf.CorrectableErrors,
			OutputLevel:       outputLevel,
		})
		var capErr *stegmark.CapacityError
		if errors.As(err, &capErr) {
			fatal("Need a larger image or a shorter message.", err)
		} else if err != nil {
			fatal("Unable to hide the message:", err)
		}
		fmt.Println("Image encoded successfully:", written)
	}
}

func fatal(msg string, err error) {
	fmt.Fprintln(os.Stderr, msg, err.Error())
	os.Exit(1)
}
