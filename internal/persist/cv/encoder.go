// internal/persist/cv/encoder.go
package cv

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/tamzrod/phototrap/internal/frame"
)

// Encoder writes artifacts through OpenCV.
type Encoder struct {
	codec string // four-character code, e.g. "XVID"
}

func NewEncoder(codec string) *Encoder {
	return &Encoder{codec: codec}
}

func (e *Encoder) WriteVideo(path string, fps float64, frames []frame.Frame) error {
	if len(frames) == 0 {
		return nil
	}
	w, h := frames[0].Width, frames[0].Height

	vw, err := gocv.VideoWriterFile(path, e.codec, fps, w, h, true)
	if err != nil {
		return fmt.Errorf("open video writer: %w", err)
	}
	defer vw.Close()

	if !vw.IsOpened() {
		return fmt.Errorf("video writer not opened (codec %s)", e.codec)
	}

	for i, f := range frames {
		if !f.SameGeometry(frames[0]) {
			return fmt.Errorf("frame %d: geometry %dx%d differs from %dx%d", i, f.Width, f.Height, w, h)
		}
		mat, err := toMat(f)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		err = vw.Write(mat)
		mat.Close()
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

func (e *Encoder) WriteImage(path string, f frame.Frame) error {
	mat, err := toMat(f)
	if err != nil {
		return err
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return errors.New("imwrite failed")
	}
	return nil
}

func toMat(f frame.Frame) (gocv.Mat, error) {
	if f.IsZero() {
		return gocv.Mat{}, errors.New("empty frame")
	}
	return gocv.NewMatFromBytes(f.Height, f.Width, gocv.MatTypeCV8UC3, f.Data)
}
