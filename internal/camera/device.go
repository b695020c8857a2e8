// internal/camera/device.go
package camera

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/tamzrod/phototrap/internal/frame"
)

type Config struct {
	Device string // index ("0") or file/URL
	Width  int
	Height int
	FPS    float64
}

// Device is an OpenCV-backed frame source.
type Device struct {
	cfg Config

	mu  sync.Mutex
	vc  *gocv.VideoCapture
	buf gocv.Mat
	seq uint64
}

func New(cfg Config) (*Device, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("camera: resolution must be > 0")
	}
	return &Device{cfg: cfg}, nil
}

// Start opens the device and requests the configured resolution.
func (d *Device) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.vc != nil {
		return nil
	}

	var src interface{} = d.cfg.Device
	if n, err := strconv.Atoi(d.cfg.Device); err == nil {
		src = n
	}

	vc, err := gocv.OpenVideoCapture(src)
	if err != nil {
		return fmt.Errorf("camera: open %q: %w", d.cfg.Device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return fmt.Errorf("camera: device %q not opened", d.cfg.Device)
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(d.cfg.Width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(d.cfg.Height))
	if d.cfg.FPS > 0 {
		vc.Set(gocv.VideoCaptureFPS, d.cfg.FPS)
	}
	vc.Set(gocv.VideoCaptureBufferSize, 1)

	d.vc = vc
	d.buf = gocv.NewMat()
	return nil
}

// Capture reads one frame. The returned Data is a fresh copy.
// Frames not matching the configured resolution are resized.
func (d *Device) Capture() (frame.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.vc == nil {
		return frame.Frame{}, errors.New("camera: not started")
	}
	if ok := d.vc.Read(&d.buf); !ok || d.buf.Empty() {
		return frame.Frame{}, errors.New("camera: empty read")
	}
	at := time.Now()

	img := d.buf
	if img.Cols() != d.cfg.Width || img.Rows() != d.cfg.Height {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(img, &resized, image.Pt(d.cfg.Width, d.cfg.Height), 0, 0, gocv.InterpolationLinear)
		img = resized
	}
	if img.Channels() != frame.Channels {
		return frame.Frame{}, fmt.Errorf("camera: expected %d channels, got %d", frame.Channels, img.Channels())
	}

	d.seq++
	return frame.New(d.seq, at, d.cfg.Width, d.cfg.Height, img.ToBytes())
}

// Stop releases the device. Safe to call more than once.
func (d *Device) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.vc == nil {
		return nil
	}
	err := d.vc.Close()
	d.buf.Close()
	d.vc = nil
	return err
}
