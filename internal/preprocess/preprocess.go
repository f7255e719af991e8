// Package preprocess converts uploaded image bytes into the tensor layout
// the classifier expects.
package preprocess

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DecodeError reports an image byte stream that could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Normalize decodes an uploaded image and converts it to the flat float32
// tensor the classifier consumes: one batch of size×size RGB pixels in HWC
// order, channel values scaled to [0,1]. Alpha is discarded and grayscale is
// widened to three channels by the RGBA conversion.
func Normalize(r io.Reader, size int) ([]float32, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	resized := resize.Resize(uint(size), uint(size), img, resize.Lanczos3)

	bounds := resized.Bounds()
	data := make([]float32, bounds.Dy()*bounds.Dx()*3)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := resized.At(x, y).RGBA()
			data[i] = float32(r16) / 65535.0
			data[i+1] = float32(g16) / 65535.0
			data[i+2] = float32(b16) / 65535.0
			i += 3
		}
	}

	return data, nil
}
