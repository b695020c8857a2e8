// internal/frame/frame.go
package frame

import (
	"errors"
	"fmt"
	"time"
)

// Channels is the fixed channel count of every frame (packed BGR).
const Channels = 3

// Frame is one captured picture.
//
// Data holds packed BGR bytes, row-major, len == Width*Height*3.
// A Frame is never modified after capture; components that hand it to another
// goroutine pass a Clone.
type Frame struct {
	Seq    uint64
	At     time.Time
	Width  int
	Height int
	Data   []byte
}

// New validates geometry and wraps data without copying.
func New(seq uint64, at time.Time, width, height int, data []byte) (Frame, error) {
	if width <= 0 || height <= 0 {
		return Frame{}, errors.New("frame: width and height must be > 0")
	}
	if len(data) != width*height*Channels {
		return Frame{}, fmt.Errorf(
			"frame: data length %d does not match %dx%dx%d",
			len(data), width, height, Channels,
		)
	}
	return Frame{Seq: seq, At: at, Width: width, Height: height, Data: data}, nil
}

// Blank returns a black frame of the given size.
func Blank(width, height int) Frame {
	return Frame{
		Width:  width,
		Height: height,
		Data:   make([]byte, width*height*Channels),
	}
}

// IsZero reports whether f carries no pixels.
func (f Frame) IsZero() bool {
	return len(f.Data) == 0
}

// Clone returns a deep copy.
func (f Frame) Clone() Frame {
	out := f
	if f.Data != nil {
		out.Data = make([]byte, len(f.Data))
		copy(out.Data, f.Data)
	}
	return out
}

// SameGeometry reports whether two frames can be compared pixel by pixel.
func (f Frame) SameGeometry(o Frame) bool {
	return f.Width == o.Width && f.Height == o.Height
}
