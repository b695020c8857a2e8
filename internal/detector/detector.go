// internal/detector/detector.go
package detector

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/tamzrod/phototrap/internal/frame"
)

// Fixed pipeline parameters.
const (
	BlurKernel       = 21
	BinaryCutoff     = 25
	DilateIterations = 2
)

// Detector is static-background frame differencing.
//
// MinArea is an absolute pixel count and is not scaled by resolution.
// Camera movement and lighting changes read as motion.
type Detector struct {
	MinArea float64
}

func New(minArea float64) (*Detector, error) {
	if minArea <= 0 {
		return nil, errors.New("detector: min area must be > 0")
	}
	return &Detector{MinArea: minArea}, nil
}

// Detect reports whether any changed region between prev and cur is larger
// than MinArea.
func (d *Detector) Detect(prev, cur frame.Frame) (bool, error) {
	if prev.IsZero() || cur.IsZero() {
		return false, errors.New("detector: empty frame")
	}
	if !prev.SameGeometry(cur) {
		return false, fmt.Errorf(
			"detector: geometry mismatch %dx%d vs %dx%d",
			prev.Width, prev.Height, cur.Width, cur.Height,
		)
	}

	a, err := prepare(prev)
	if err != nil {
		return false, err
	}
	defer a.Close()

	b, err := prepare(cur)
	if err != nil {
		return false, err
	}
	defer b.Close()

	mask := Mask(a, b)
	defer mask.Close()

	return AnyContourAbove(mask, d.MinArea), nil
}

// prepare converts one frame to blurred luminance.
func prepare(f frame.Frame) (gocv.Mat, error) {
	src, err := gocv.NewMatFromBytes(f.Height, f.Width, gocv.MatTypeCV8UC3, f.Data)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("detector: wrap frame %d: %w", f.Seq, err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	gocv.GaussianBlur(gray, &blurred, image.Pt(BlurKernel, BlurKernel), 0, 0, gocv.BorderDefault)
	gray.Close()

	return blurred, nil
}

// Mask is the dilated binary difference of two prepared frames.
// The caller closes the result.
func Mask(a, b gocv.Mat) gocv.Mat {
	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(a, b, &diff)

	bin := gocv.NewMat()
	gocv.Threshold(diff, &bin, BinaryCutoff, 255, gocv.ThresholdBinary)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()

	for i := 0; i < DilateIterations; i++ {
		next := gocv.NewMat()
		gocv.Dilate(bin, &next, kernel)
		bin.Close()
		bin = next
	}
	return bin
}

// AnyContourAbove reports whether an external contour of mask has area > minArea.
func AnyContourAbove(mask gocv.Mat, minArea float64) bool {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	for i := 0; i < contours.Size(); i++ {
		if gocv.ContourArea(contours.At(i)) > minArea {
			return true
		}
	}
	return false
}
