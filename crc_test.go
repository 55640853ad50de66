// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sgp30

import "testing"

func TestCRC8(t *testing.T) {
	var tests = []struct {
		bytes  []byte
		result byte
	}{
		// Reference value from the datasheet.
		{bytes: []byte{0xbe, 0xef}, result: 0x92},
		{bytes: []byte{0x00, 0x00}, result: 0x81},
		{bytes: []byte{0x01, 0x90}, result: 0x4c},
		{bytes: []byte{0xd4, 0x00}, result: 0xc6},
		{bytes: []byte{0x01, 0xa4}, result: 0x4d},
		{bytes: []byte{0xab, 0xcd}, result: 0x6f},
	}
	for _, test := range tests {
		res := crc8(test.bytes)
		if res != test.result {
			t.Errorf("crc8(%#v)!=0x%x received 0x%x", test.bytes, test.result, res)
		}
	}
}
