// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sgp30 controls a Sensirion SGP30 indoor air quality sensor over
// I²C. The sensor reports a CO₂ equivalent in ppm and a total volatile
// organic compound concentration in ppb, and exposes its calibration
// baseline so callers can persist it across power cycles.
//
// Every response word is protected by a Sensirion CRC-8 and is rejected on
// any mismatch. All operations are synchronous: each one performs a single
// bus transaction and blocks for the sensor's documented processing time
// before reading the result.
//
// **Datasheet:** https://sensirion.com/media/documents/984E0DD5/61644B8B/Sensirion_Gas_Sensors_Datasheet_SGP30.pdf
package sgp30
