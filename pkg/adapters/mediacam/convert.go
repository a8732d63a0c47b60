package mediacam

import (
	"image"

	"golang.org/x/image/draw"
)

// ToRGB renders img into a packed width*height*3 RGB frame, scaling when
// the driver delivered a different size than requested.
func ToRGB(img image.Image, width, height int) []byte {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	src := img.Bounds()
	if src.Dx() == width && src.Dy() == height {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	}

	frame := make([]byte, width*height*3)
	for i, j := 0, 0; i < len(dst.Pix); i, j = i+4, j+3 {
		frame[j] = dst.Pix[i]
		frame[j+1] = dst.Pix[i+1]
		frame[j+2] = dst.Pix[i+2]
	}
	return frame
}
