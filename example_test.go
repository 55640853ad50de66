// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sgp30_test

import (
	"log"
	"time"

	"github.com/GermanBionicSystems/sgp30"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Example shows creating an SGP30 sensor and reading from it.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	dev, err := sgp30.New(bus)
	if err != nil {
		log.Fatal(err)
	}

	// Start measurement mode. Afterwards the sensor wants to be read every
	// second to keep its baseline compensation running.
	if err := dev.InitAirQuality(); err != nil {
		log.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		env, err := dev.Measure()
		if err != nil {
			log.Println(err)
		} else {
			log.Printf("CO2: %s   TVOC: %s\n", env.CO2, env.TVOC)
		}
		time.Sleep(time.Second)
	}
}

// ExampleDev_Baseline shows persisting the calibration baseline so it can be
// restored after a power cycle.
func ExampleDev_Baseline() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	dev, err := sgp30.New(bus)
	if err != nil {
		log.Fatal(err)
	}
	if err := dev.InitAirQuality(); err != nil {
		log.Fatal(err)
	}

	// Restore the baseline saved before the last power down, then read the
	// current one back once calibration has had time to run.
	if err := dev.SetBaseline(sgp30.Baseline{CO2: 0x8a2f, TVOC: 0x8f73}); err != nil {
		log.Fatal(err)
	}
	baseline, err := dev.Baseline()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("baseline CO2=0x%04x TVOC=0x%04x", baseline.CO2, baseline.TVOC)
}
