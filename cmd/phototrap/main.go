// cmd/phototrap/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/phototrap/internal/alarm"
	"github.com/tamzrod/phototrap/internal/broadcast"
	"github.com/tamzrod/phototrap/internal/camera"
	"github.com/tamzrod/phototrap/internal/capture"
	"github.com/tamzrod/phototrap/internal/config"
	"github.com/tamzrod/phototrap/internal/detector"
	"github.com/tamzrod/phototrap/internal/eventlog"
	"github.com/tamzrod/phototrap/internal/gpio"
	"github.com/tamzrod/phototrap/internal/lifecycle"
	"github.com/tamzrod/phototrap/internal/liveview"
	"github.com/tamzrod/phototrap/internal/persist"
	"github.com/tamzrod/phototrap/internal/persist/cv"
	"github.com/tamzrod/phototrap/internal/remotelight"
	"github.com/tamzrod/phototrap/internal/status"
)

const flushBacklog = 4

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "path to YAML config (created with defaults if missing)")
	dev := flag.Bool("dev", false, "record GPIO writes in memory instead of driving pins")
	flag.Parse()

	boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		boot.Fatal().Err(err).Msg("config load failed")
	}
	if err := config.Validate(cfg); err != nil {
		boot.Fatal().Err(err).Msg("config validation failed")
	}
	config.Normalize(cfg)

	log, closeLog, err := newLogger(cfg.Log, os.Stderr, time.Now())
	if err != nil {
		boot.Fatal().Err(err).Msg("logger setup failed")
	}

	code := run(cfg, *dev, log)
	_ = closeLog()
	os.Exit(code)
}

// run wires the pipeline and blocks until stop. Returns the process exit code.
func run(cfg *config.Config, dev bool, log zerolog.Logger) int {
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	lc := lifecycle.New(sigCtx, log.With().Str("component", "lifecycle").Logger())
	defer lc.Teardown()

	var (
		board    gpio.Board
		alarmCtl *alarm.Controller
		out      outputs
		cam      *camera.Device
		queue    *persist.Queue
		index    *eventlog.Log
	)

	// ---- teardown, fixed order ----

	lc.OnTeardown("alarm off", func() error {
		if alarmCtl != nil {
			alarmCtl.Deactivate()
		}
		return nil
	})
	lc.OnTeardown("night light off", func() error {
		if out.night == nil {
			return nil
		}
		return out.night.Set(false)
	})
	lc.OnTeardown("camera stop", func() error {
		if cam == nil {
			return nil
		}
		return cam.Stop()
	})
	lc.OnTeardown("flush queue drain", func() error {
		if queue == nil {
			return nil
		}
		return queue.Close()
	})
	lc.OnTeardown("event index close", func() error {
		if index == nil {
			return nil
		}
		return index.Close()
	})
	lc.OnTeardown("pin release", func() error {
		if board == nil {
			return nil
		}
		return board.Release()
	})

	// ---- hardware ----

	b, err := openBoard(dev)
	if err != nil {
		log.Error().Err(err).Msg("gpio init failed")
		return 1
	}
	board = b

	out, err = claimOutputs(b, cfg)
	if err != nil {
		log.Error().Err(err).Msg("gpio claim failed")
		return 1
	}

	notifier, err := remotelight.Build(cfg.RemoteLight)
	if err != nil {
		log.Error().Err(err).Msg("remote light setup failed")
		return 1
	}

	var al capture.Alarm
	if cfg.Alarm.Enabled {
		alarmCtl = alarm.New(alarm.Config{
			Budget:        cfg.AlarmDuration(),
			Notifier:      notifier,
			NotifyTimeout: cfg.RemoteLightTimeout(),
		}, out.alarm, log.With().Str("component", "alarm").Logger())
		al = alarmCtl
	}

	if out.night != nil {
		if err := out.night.Set(true); err != nil {
			log.Warn().Err(err).Msg("night light on failed")
		} else {
			log.Info().Str("pin", out.night.Name()).Msg("night light on")
		}
	}

	// ---- persistence ----

	var idx persist.Index
	if cfg.Storage.IndexDB != "" {
		index, err = eventlog.Open(cfg.Storage.IndexDB)
		if err != nil {
			log.Error().Err(err).Msg("event index open failed")
			return 1
		}
		idx = index
	}

	writer, err := persist.NewWriter(persist.Config{
		VideosDir:         cfg.VideosDir(),
		ImagesDir:         cfg.ImagesDir(),
		Container:         cfg.Storage.Container,
		FPS:               float64(cfg.Camera.FPS),
		MinFramesForVideo: cfg.Motion.MinFramesForVideo,
	}, cv.NewEncoder(cfg.Storage.Codec), idx, log.With().Str("component", "persist").Logger())
	if err != nil {
		log.Error().Err(err).Msg("persistence setup failed")
		return 1
	}

	var flusher persist.Flusher = writer
	if cfg.Storage.AsyncFlush {
		queue = persist.NewQueue(writer, flushBacklog, log.With().Str("component", "flush").Logger())
		flusher = queue
	}

	// ---- capture ----

	det, err := detector.New(cfg.Motion.MinArea)
	if err != nil {
		log.Error().Err(err).Msg("detector setup failed")
		return 1
	}

	cam, err = camera.New(camera.Config{
		Device: cfg.Camera.Device,
		Width:  cfg.Camera.Resolution.Width,
		Height: cfg.Camera.Resolution.Height,
		FPS:    float64(cfg.Camera.FPS),
	})
	if err != nil {
		log.Error().Err(err).Msg("camera setup failed")
		return 1
	}
	if err := cam.Start(); err != nil {
		log.Error().Err(err).Msg("camera start failed")
		return 1
	}

	slot := broadcast.NewSlot()
	statusBoard := status.NewBoard()

	orch, err := capture.New(capture.Config{
		Interval:     cfg.Interval(),
		Threshold:    cfg.Motion.Threshold,
		Cooldown:     cfg.Cooldown(),
		AlarmEnabled: cfg.Alarm.Enabled,
	}, capture.Deps{
		Detector:  det,
		Flusher:   flusher,
		Alarm:     al,
		Broadcast: slot,
		Status:    statusBoard,
		Log:       log.With().Str("component", "capture").Logger(),
	})
	if err != nil {
		log.Error().Err(err).Msg("capture setup failed")
		return 1
	}

	// ---- live view ----

	viewDone := make(chan struct{})
	if cfg.LiveView.Enabled {
		var events liveview.Events
		if index != nil {
			events = index
		}
		vlog := log.With().Str("component", "liveview").Logger()
		h := liveview.NewHandler(slot, statusBoard, events, cfg.Interval(), vlog)
		engine := liveview.NewEngine(h, cfg.LiveView.CORSOrigins, vlog)

		go func() {
			defer close(viewDone)
			if err := liveview.Serve(lc.Context(), cfg.LiveView.Listen, engine, vlog); err != nil {
				vlog.Error().Err(err).Msg("live view stopped")
			}
		}()
	} else {
		close(viewDone)
	}

	// --------------------
	// Run until stop or fatal error
	// --------------------

	log.Info().
		Str("device", cfg.Camera.Device).
		Int("fps", cfg.Camera.FPS).
		Int("threshold", cfg.Motion.Threshold).
		Dur("cooldown", cfg.Cooldown()).
		Msg("motion detection started")

	code := 0
	runErr := orch.Run(lc.Context(), cam)
	orch.Close()

	switch {
	case runErr == nil:
		lc.Stop("signal")
	case errors.Is(runErr, capture.ErrAcquisition), errors.Is(runErr, capture.ErrDetection):
		log.Error().Err(runErr).Msg("capture loop failed")
		lc.Stop("fatal: " + runErr.Error())
		code = 1
	default:
		log.Error().Err(runErr).Msg("capture loop ended unexpectedly")
		lc.Stop("fatal")
		code = 1
	}

	lc.Teardown()
	<-viewDone

	log.Info().Str("reason", lc.Reason()).Msg("motion detection stopped")
	return code
}
