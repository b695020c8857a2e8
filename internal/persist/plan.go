// internal/persist/plan.go
package persist

import (
	"fmt"
	"path/filepath"
)

// Config is the minimal runtime config the writer needs.
type Config struct {
	VideosDir         string
	ImagesDir         string
	Container         string // file extension, e.g. "avi"
	FPS               float64
	MinFramesForVideo int
}

// Plan is the fully-resolved set of paths for one batch.
// No IO.
type Plan struct {
	Kind  Kind
	Dir   string   // directory that must exist
	Files []string // one video path, or one path per frame
}

// BuildPlan decides video vs image sequence and names every output.
//
// Video artifacts are named by the close time, image directories by the
// start time. Downstream browsing depends on this asymmetry.
func BuildPlan(cfg Config, b Batch) Plan {
	if len(b.Frames) >= cfg.MinFramesForVideo {
		name := fmt.Sprintf("motion_%s.%s", b.Closed.Format(TimestampLayout), cfg.Container)
		return Plan{
			Kind:  KindVideo,
			Dir:   cfg.VideosDir,
			Files: []string{filepath.Join(cfg.VideosDir, name)},
		}
	}

	dir := filepath.Join(cfg.ImagesDir, b.Start.Format(TimestampLayout))
	files := make([]string, len(b.Frames))
	for i := range b.Frames {
		files[i] = filepath.Join(dir, fmt.Sprintf("frame_%03d.jpg", i))
	}
	return Plan{Kind: KindImages, Dir: dir, Files: files}
}
