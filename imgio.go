package stegmark

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/zedseven/stegmark/internal/util"
)

// ImageInfo describes where a PixelBuffer came from, so it can be written back the same way.
type ImageInfo struct {
	W, H   uint
	Model  color.Model // The in-memory layout written back out: RGBAModel or NRGBAModel.
	Format string      // The name of the decoder that read the image.
}

func (info ImageInfo) String() string {
	return fmt.Sprintf("{%dx%d %v %v}", info.W, info.H, colourModelToStr(info.Model), info.Format)
}

var losslessExts = map[string]bool{
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Primary methods

// LoadImage decodes the image on disk into a PixelBuffer.
func LoadImage(imgPath string, outputLevel OutputLevel) (buf *PixelBuffer, info ImageInfo, err error) {
	imgFile, err := os.Open(imgPath)
	if err != nil {
		printlnLvl(outputLevel, OutputSteps, "Unable to open the image!", err.Error())
		return nil, ImageInfo{}, err
	}

	defer func() {
		if cerr := imgFile.Close(); cerr != nil {
			printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Error closing the file '%v': %v", imgPath, cerr.Error()))
		}
	}()

	buf, info, err = readPixels(imgFile)
	if err != nil {
		printlnLvl(outputLevel, OutputSteps, "The image couldn't be decoded:", err.Error())
		return nil, ImageInfo{}, err
	}

	return
}

// WriteImage encodes buf to outPath, choosing the encoder from the extension.
// The path must already have a lossless extension; see NormalizeOutputPath.
func WriteImage(buf *PixelBuffer, info ImageInfo, outPath string, outputLevel OutputLevel) (err error) {
	_, ext := util.SplitExt(outPath)
	if !losslessExts[ext] {
		return &InvalidFormatError{fmt.Sprintf("'%v' is not a lossless output format.", ext)}
	}

	img, err := pixelsToImage(buf, info)
	if err != nil {
		printlnLvl(outputLevel, OutputSteps, "Unknown image format.")
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("There was an error creating the file '%v'.", outPath))
		return err
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err = encodeImage(f, img, ext); err != nil {
		printlnLvl(outputLevel, OutputSteps, "There was an error encoding the image to the new file.")
		return err
	}

	return nil
}

// NormalizeOutputPath swaps the extension for .png unless it already names a lossless format.
// LSB data does not survive lossy re-encoding, so .jpg and .jpeg always become .png.
func NormalizeOutputPath(outPath string) string {
	stem, ext := util.SplitExt(outPath)
	if losslessExts[ext] {
		return outPath
	}
	return stem + ".png"
}

// DefaultOutputPath derives the output path from the source image: "<name>_lsb<ext>", normalized.
func DefaultOutputPath(imgPath string) string {
	stem, ext := util.SplitExt(imgPath)
	return NormalizeOutputPath(stem + "_lsb" + ext)
}

// Helper functions

func readPixels(r io.Reader) (*PixelBuffer, ImageInfo, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, ImageInfo{}, err
	}

	dims := img.Bounds()
	w, h := dims.Dx(), dims.Dy()
	info := ImageInfo{W: uint(w), H: uint(h), Format: format}

	channelsPerPix := uint8(4)
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		channelsPerPix = 3
	}

	buf, err := NewPixelBuffer(info.W, info.H, channelsPerPix)
	if err != nil {
		return nil, ImageInfo{}, err
	}

	// 8-bit layouts are copied raw where that loses nothing,
	// everything else goes through the NRGBA colour model
	info.Model = color.NRGBAModel
	if simg, ok := img.(*image.NRGBA); ok {
		copyPix(buf, simg.Pix, simg.Stride, simg.PixOffset(dims.Min.X, dims.Min.Y))
	} else if simg, ok := img.(*image.RGBA); ok && channelsPerPix == 3 {
		info.Model = color.RGBAModel
		copyPix(buf, simg.Pix, simg.Stride, simg.PixOffset(dims.Min.X, dims.Min.Y))
	} else {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(dims.Min.X+x, dims.Min.Y+y)).(color.NRGBA)
				p := buf.Pixels[y*w+x]
				p[0], p[1], p[2] = c.R, c.G, c.B
				if channelsPerPix == 4 {
					p[3] = c.A
				}
			}
		}
	}

	return buf, info, nil
}

func copyPix(buf *PixelBuffer, pix []uint8, stride, offset int) {
	w := int(buf.W)
	for i, p := range buf.Pixels {
		base := offset + (i/w)*stride + (i%w)*4
		copy(p, pix[base:base+int(buf.ChannelsPerPix)])
	}
}

func pixelsToImage(buf *PixelBuffer, info ImageInfo) (image.Image, error) {
	rect := image.Rect(0, 0, int(buf.W), int(buf.H))

	var pix []uint8
	var img image.Image
	switch info.Model {
	case color.RGBAModel:
		simg := image.NewRGBA(rect)
		pix, img = simg.Pix, simg
	case color.NRGBAModel, nil:
		simg := image.NewNRGBA(rect)
		pix, img = simg.Pix, simg
	default:
		return nil, unknownColourModelError{}
	}

	for i, p := range buf.Pixels {
		copy(pix[i*4:], p)
		if buf.ChannelsPerPix == 3 {
			pix[i*4+3] = 0xff
		}
	}

	return img, nil
}

func encodeImage(w io.Writer, img image.Image, ext string) error {
	switch ext {
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		encoder := png.Encoder{CompressionLevel: png.BestCompression}
		return encoder.Encode(w, img)
	}
}

func colourModelToStr(model color.Model) string {
	switch model {
	case color.NRGBAModel:
		return "NRGBA"
	case color.RGBAModel:
		return "RGBA"
	default:
		return "<Unknown>"
	}
}
