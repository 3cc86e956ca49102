package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ErrImageDecode is the only fatal error of the extraction pipeline.
var ErrImageDecode = errors.New("failed to decode image")

// sharpenKernel matches the classic 3x3 sharpen filter; Convolve3x3
// normalises it by its sum (16).
var sharpenKernel = [9]float64{
	-2, -2, -2,
	-2, 32, -2,
	-2, -2, -2,
}

// DecodeImage decodes PNG, JPEG, GIF, BMP or TIFF bytes, applying the EXIF
// orientation of phone photos.
func DecodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return img, nil
}

// PreprocessImage prepares a document photo for OCR: grayscale, autocontrast,
// sharpen, then a bilinear upscale to exactly twice the width and height.
// The input image is never modified.
func PreprocessImage(img image.Image) *image.Gray {
	b := img.Bounds()

	gray := imaging.Grayscale(img)
	stretched := autoContrast(gray)
	sharpened := imaging.Convolve3x3(stretched, sharpenKernel, &imaging.ConvolveOptions{Normalize: true})
	resized := imaging.Resize(sharpened, b.Dx()*2, b.Dy()*2, imaging.Linear)

	return toGray(resized)
}

// autoContrast stretches the luminance histogram so the darkest pixel maps to
// 0 and the brightest to 255. A flat image is returned unchanged.
func autoContrast(img *image.NRGBA) *image.NRGBA {
	lo, hi := uint8(255), uint8(0)
	for i := 0; i < len(img.Pix); i += 4 {
		v := img.Pix[i]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		return imaging.Clone(img)
	}

	var lut [256]uint8
	span := int(hi) - int(lo)
	for v := 0; v < 256; v++ {
		switch {
		case v <= int(lo):
			lut[v] = 0
		case v >= int(hi):
			lut[v] = 255
		default:
			lut[v] = uint8(((v-int(lo))*255 + span/2) / span)
		}
	}

	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
	})
}

// toGray copies the red channel of an already-gray NRGBA image.
func toGray(img *image.NRGBA) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		dst := out.Pix[y*out.Stride : y*out.Stride+b.Dx()]
		for x := range dst {
			dst[x] = src[x*4]
		}
	}
	return out
}
