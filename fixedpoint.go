// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sgp30

// toFixedPoint88 converts v to the 8.8 fixed point encoding used by the
// humidity compensation command: integer part in the high byte, fractional
// part scaled by 1/256 in the low byte. The fraction is truncated toward
// zero, so 15.999 encodes to 0x0FFF rather than rounding up to 0x1000.
func toFixedPoint88(v float64) (uint16, error) {
	// Range check before converting. A float to unsigned conversion with an
	// out of range value has an implementation dependent result in Go.
	if v < 0 || v >= 256 {
		return 0, ErrFixedPointRange
	}
	integer := uint16(v)
	fractional := uint16((v - float64(integer)) * 256)
	if fractional > 0xff {
		return 0, ErrFixedPointRange
	}
	return integer<<8 | fractional, nil
}
