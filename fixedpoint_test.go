// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sgp30

import (
	"errors"
	"testing"
)

func TestToFixedPoint88(t *testing.T) {
	var tests = []struct {
		value  float64
		result uint16
	}{
		{value: 0.0, result: 0x0000},
		{value: 15.5, result: 0x0f80},
		// The fraction truncates toward zero, it never carries into the
		// integer byte.
		{value: 15.999, result: 0x0fff},
		{value: 255.5, result: 0xff80},
		{value: 255.99609375, result: 0xffff},
	}
	for _, test := range tests {
		res, err := toFixedPoint88(test.value)
		if err != nil {
			t.Errorf("toFixedPoint88(%f) returned %v", test.value, err)
		} else if res != test.result {
			t.Errorf("toFixedPoint88(%f)!=0x%04x received 0x%04x", test.value, test.result, res)
		}
	}
}

func TestToFixedPoint88OutOfRange(t *testing.T) {
	for _, value := range []float64{555.0, 256.0, -0.001, -1.0} {
		if _, err := toFixedPoint88(value); !errors.Is(err, ErrFixedPointRange) {
			t.Errorf("toFixedPoint88(%f) expected ErrFixedPointRange, got %v", value, err)
		}
	}
}
