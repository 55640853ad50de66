// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sgp30

import "errors"

// ErrInvalidCRC is returned when a word of a response frame fails CRC
// validation. The returned error carries the command and word index; match
// it with errors.Is.
var ErrInvalidCRC = errors.New("sgp30: invalid crc")

// ErrFixedPointRange is returned when a humidity value cannot be represented
// in the sensor's 8.8 fixed point encoding.
var ErrFixedPointRange = errors.New("sgp30: value out of fixed point range")

var errReleased = errors.New("sgp30: bus already released")
