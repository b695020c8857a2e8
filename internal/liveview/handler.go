// internal/liveview/handler.go
package liveview

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tamzrod/phototrap/internal/eventlog"
	"github.com/tamzrod/phototrap/internal/frame"
	"github.com/tamzrod/phototrap/internal/status"
)

const (
	jpegQuality = 80
	boundary    = "frame"
)

// Frames is the read side of the broadcast slot.
type Frames interface {
	Snapshot() (frame.Frame, bool)
	Published() uint64
}

// Status is the read side of the status board.
type Status interface {
	Load() status.Snapshot
}

// Events lists saved artifacts.
type Events interface {
	Recent(ctx context.Context, limit int) ([]eventlog.Entry, error)
}

type Handler struct {
	frames   Frames
	status   Status
	events   Events // nil when the index is disabled
	interval time.Duration
	log      zerolog.Logger
}

func NewHandler(frames Frames, st Status, events Events, interval time.Duration, log zerolog.Logger) *Handler {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	return &Handler{
		frames:   frames,
		status:   st,
		events:   events,
		interval: interval,
		log:      log,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/live.jpg", h.liveJPEG)
	r.GET("/stream", h.stream)
	r.GET("/status", h.getStatus)
	r.GET("/events", h.listEvents)
}

func (h *Handler) liveJPEG(c *gin.Context) {
	f, ok := h.frames.Snapshot()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, errorResponse("no frame captured yet"))
		return
	}

	buf, err := encodeJPEG(f)
	if err != nil {
		h.log.Error().Err(err).Msg("jpeg encode failed")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/jpeg", buf)
}

// stream serves MJPEG until the client goes away.
// Each part is the freshest frame; frames published between polls are skipped.
func (h *Handler) stream(c *gin.Context) {
	ctx := c.Request.Context()

	c.Header("Content-Type", "multipart/x-mixed-replace; boundary="+boundary)
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var last uint64
	for {
		if n := h.frames.Published(); n != last {
			if f, ok := h.frames.Snapshot(); ok {
				buf, err := encodeJPEG(f)
				if err != nil {
					h.log.Warn().Err(err).Msg("stream jpeg encode failed")
					return
				}
				if err := writePart(c.Writer, buf); err != nil {
					return
				}
				c.Writer.Flush()
				last = n
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(status.Encode(h.status.Load(), time.Now())))
}

func (h *Handler) listEvents(c *gin.Context) {
	if h.events == nil {
		c.JSON(http.StatusNotFound, errorResponse("event index disabled"))
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1000 {
			c.JSON(http.StatusBadRequest, errorResponse("limit must be between 1 and 1000"))
			return
		}
		limit = n
	}

	entries, err := h.events.Recent(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list events")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
		return
	}
	if entries == nil {
		entries = []eventlog.Entry{}
	}
	c.JSON(http.StatusOK, successResponse(entries))
}

// ---- helpers ----

func encodeJPEG(f frame.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, f.Image(), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePart(w gin.ResponseWriter, jpg []byte) error {
	if _, err := fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", boundary, len(jpg)); err != nil {
		return err
	}
	if _, err := w.Write(jpg); err != nil {
		return err
	}
	_, err := w.Write([]byte("\r\n"))
	return err
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
