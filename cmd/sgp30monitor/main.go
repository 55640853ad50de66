// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sgp30monitor reads an SGP30 air quality sensor in a loop and prints the
// readings with a color block keyed to the CO₂ level. It also takes care of
// the caller side of the sensor's calibration contract: it restores a saved
// baseline on start and persists the current one periodically and on
// shutdown.
package main

import (
	"errors"
	"image/color"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/sgp30"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

type config struct {
	// Bus is the i2creg bus name. Empty selects the first available bus.
	Bus string `yaml:"bus"`
	// IntervalMs is the sample interval. The sensor wants 1000ms to keep its
	// baseline compensation running, which is also the default.
	IntervalMs int `yaml:"interval_ms"`
	// BaselineFile is where the calibration baseline is persisted. Empty
	// disables persistence.
	BaselineFile string `yaml:"baseline_file"`
	// AbsoluteHumidity in g/m³ for on-chip humidity compensation. Zero
	// leaves compensation off.
	AbsoluteHumidity float64 `yaml:"absolute_humidity"`
	// PersistEvery is the number of samples between baseline saves.
	// Defaults to 3600, roughly hourly at the default interval.
	PersistEvery int `yaml:"persist_every"`
}

type savedBaseline struct {
	CO2  uint16 `yaml:"co2"`
	TVOC uint16 `yaml:"tvoc"`
}

func loadConfig(path string) (*config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	if cfg.IntervalMs <= 0 {
		cfg.IntervalMs = 1000
	}
	if cfg.PersistEvery <= 0 {
		cfg.PersistEvery = 3600
	}
	return cfg, nil
}

func loadBaseline(path string) (*savedBaseline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b := &savedBaseline{}
	if err := yaml.Unmarshal(raw, b); err != nil {
		return nil, err
	}
	return b, nil
}

func saveBaseline(path string, b sgp30.Baseline) error {
	raw, err := yaml.Marshal(&savedBaseline{CO2: b.CO2, TVOC: b.TVOC})
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// co2Block returns an ANSI colored block for the reading: green below
// 1000ppm, yellow below 2000ppm, red above.
func co2Block(co2 sgp30.CO2) string {
	c := color.NRGBA{0, 255, 0, 255}
	switch {
	case co2 >= 2000:
		c = color.NRGBA{255, 0, 0, 255}
	case co2 >= 1000:
		c = color.NRGBA{255, 255, 0, 255}
	}
	return ansi256.Default.Block(c) + "\033[0m"
}

func persist(cfg *config, dev *sgp30.Dev) {
	if cfg.BaselineFile == "" {
		return
	}
	baseline, err := dev.Baseline()
	if err != nil {
		log.Printf("baseline read failed: %v", err)
		return
	}
	if err := saveBaseline(cfg.BaselineFile, baseline); err != nil {
		log.Printf("baseline save failed: %v", err)
		return
	}
	log.Printf("saved baseline CO2=0x%04x TVOC=0x%04x", baseline.CO2, baseline.TVOC)
}

func run(cfg *config, out io.Writer) error {
	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return err
	}

	dev, err := sgp30.New(bus)
	if err != nil {
		bus.Close()
		return err
	}
	// The driver owns the bus from here until Release().
	defer func() {
		dev.Release()
		bus.Close()
	}()

	if serial, err := dev.SerialNumber(); err == nil {
		log.Printf("sensor serial 0x%012x", serial)
	} else {
		return err
	}

	if err := dev.InitAirQuality(); err != nil {
		return err
	}

	if cfg.BaselineFile != "" {
		if b, err := loadBaseline(cfg.BaselineFile); err == nil {
			if err := dev.SetBaseline(sgp30.Baseline{CO2: b.CO2, TVOC: b.TVOC}); err != nil {
				return err
			}
			log.Printf("restored baseline CO2=0x%04x TVOC=0x%04x", b.CO2, b.TVOC)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	if cfg.AbsoluteHumidity > 0 {
		if err := dev.SetAbsoluteHumidity(cfg.AbsoluteHumidity); err != nil {
			return err
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	ticker := time.NewTicker(time.Duration(cfg.IntervalMs) * time.Millisecond)
	defer ticker.Stop()

	samples := 0
	for {
		select {
		case <-stop:
			persist(cfg, dev)
			return nil
		case <-ticker.C:
			env, err := dev.Measure()
			if err != nil {
				// One failed reading is not fatal, the caller decides on
				// retries, so just keep sampling.
				log.Printf("measure failed: %v", err)
				continue
			}
			io.WriteString(out, co2Block(env.CO2)+" "+env.String()+"\n")
			samples++
			if samples%cfg.PersistEvery == 0 {
				persist(cfg, dev)
			}
		}
	}
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: sgp30monitor <config.yaml>")
	}
	cfg, err := loadConfig(os.Args[1])
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := run(cfg, colorable.NewColorableStdout()); err != nil {
		log.Fatal(err)
	}
}
