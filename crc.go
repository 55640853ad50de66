// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sgp30

// crc8 calculates the CRC-8 the SGP30 appends to every data word: polynomial
// 0x31, initial value 0xFF, no reflection, no final XOR. The reference value
// from the datasheet is crc8({0xBE, 0xEF}) == 0x92.
func crc8(bytes []byte) byte {
	var crc byte = 0xff
	for _, val := range bytes {
		crc ^= val
		for i := 0; i < 8; i++ {
			if (crc & 0x80) == 0 {
				crc <<= 1
			} else {
				crc = (crc << 1) ^ 0x31
			}
		}
	}
	return crc
}
