// cmd/phototrap/hardware.go
package main

import (
	"fmt"

	"github.com/tamzrod/phototrap/internal/alarm"
	"github.com/tamzrod/phototrap/internal/config"
	"github.com/tamzrod/phototrap/internal/gpio"
)

// outputs are the claimed pins, split by owner.
type outputs struct {
	alarm alarm.Outputs // owned by the alarm controller
	night gpio.Output   // owned by main; nil when disabled
}

func openBoard(dev bool) (gpio.Board, error) {
	if dev {
		return gpio.NewMemoryBoard(), nil
	}
	return gpio.OpenPeriph()
}

// claimOutputs reserves every enabled pin. Disabled features claim nothing.
func claimOutputs(b gpio.Board, cfg *config.Config) (outputs, error) {
	var o outputs

	if cfg.Alarm.Enabled {
		for _, p := range []struct {
			name string
			dst  *gpio.Output
		}{
			{cfg.Alarm.SirenPin, &o.alarm.Siren},
			{cfg.Alarm.RedPin, &o.alarm.Red},
			{cfg.Alarm.GreenPin, &o.alarm.Green},
			{cfg.Alarm.BluePin, &o.alarm.Blue},
		} {
			out, err := b.Output(p.name)
			if err != nil {
				return o, fmt.Errorf("alarm pin: %w", err)
			}
			*p.dst = out
		}
	}

	if cfg.NightLight.Enabled {
		out, err := b.Output(cfg.NightLight.Pin)
		if err != nil {
			return o, fmt.Errorf("night light pin: %w", err)
		}
		o.night = out
	}
	return o, nil
}
