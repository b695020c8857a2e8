// internal/frame/image.go
package frame

import (
	"image"
	"image/draw"
)

// Image converts the BGR buffer into an RGBA image for stdlib encoders.
func (f Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, j := 0, 0; i+2 < len(f.Data) && j+3 < len(img.Pix); i, j = i+3, j+4 {
		img.Pix[j] = f.Data[i+2] // BGR -> RGB
		img.Pix[j+1] = f.Data[i+1]
		img.Pix[j+2] = f.Data[i]
		img.Pix[j+3] = 255
	}
	return img
}

// FromImage converts any image into a BGR frame.
func FromImage(img image.Image) Frame {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	f := Blank(b.Dx(), b.Dy())
	for i, j := 0, 0; i+2 < len(f.Data); i, j = i+3, j+4 {
		f.Data[i] = rgba.Pix[j+2]
		f.Data[i+1] = rgba.Pix[j+1]
		f.Data[i+2] = rgba.Pix[j]
	}
	return f
}

// FillRect paints an axis-aligned rectangle with a BGR colour, clipped to the frame.
// Used to synthesize motion in tests and dev runs.
func (f Frame) FillRect(r image.Rectangle, b, g, red byte) {
	r = r.Intersect(image.Rect(0, 0, f.Width, f.Height))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := (y*f.Width + x) * Channels
			f.Data[i] = b
			f.Data[i+1] = g
			f.Data[i+2] = red
		}
	}
}
