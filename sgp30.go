// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sgp30

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// SensorAddress is the fixed I²C address of the SGP30. The device has no
// address pins, so it is the same for every sensor.
const SensorAddress uint16 = 0x58

// Value returned by the self-test command on a healthy sensor.
const selfTestPass uint16 = 0xd400

// Structure to simplify sending commands to the device.
type command struct {
	// The 16-bit command word.
	opcode uint16
	// Settle time between issuing the command and reading the response.
	// Taken from the measurement duration table in the datasheet.
	settle time.Duration
	// The expected number of response bytes including the CRCs.
	// 0, 3, 6 or 9.
	responseSize int
}

// The various implemented commands.

var cmdInitAirQuality = command{
	opcode: 0x2003,
	settle: 10 * time.Millisecond,
}
var cmdMeasureAirQuality = command{
	opcode:       0x2008,
	settle:       12 * time.Millisecond,
	responseSize: 6,
}
var cmdGetBaseline = command{
	opcode:       0x2015,
	settle:       10 * time.Millisecond,
	responseSize: 6,
}
var cmdSetBaseline = command{
	opcode: 0x201e,
	settle: 10 * time.Millisecond,
}
var cmdGetTVOCBaseline = command{
	opcode:       0x20b3,
	settle:       10 * time.Millisecond,
	responseSize: 3,
}
var cmdSetTVOCBaseline = command{
	opcode: 0x2077,
	settle: 10 * time.Millisecond,
}
var cmdMeasureRaw = command{
	opcode:       0x2050,
	settle:       25 * time.Millisecond,
	responseSize: 3,
}
var cmdSelfTest = command{
	opcode:       0x2032,
	settle:       220 * time.Millisecond,
	responseSize: 3,
}
var cmdSetHumidity = command{
	opcode: 0x2061,
	settle: 10 * time.Millisecond,
}
var cmdGetFeatureSet = command{
	opcode:       0x202f,
	settle:       10 * time.Millisecond,
	responseSize: 3,
}
var cmdGetSerial = command{
	opcode:       0x3682,
	settle:       500 * time.Microsecond,
	responseSize: 9,
}

// CO2 is a CO₂ equivalent concentration in ppm.
type CO2 uint16

func (c CO2) String() string {
	return strconv.Itoa(int(c)) + "ppm"
}

// TVOC is a total volatile organic compound concentration in ppb.
type TVOC uint16

func (t TVOC) String() string {
	return strconv.Itoa(int(t)) + "ppb"
}

// Env is a single air quality reading.
type Env struct {
	CO2  CO2
	TVOC TVOC
}

func (e Env) String() string {
	return "CO2: " + e.CO2.String() + " TVOC: " + e.TVOC.String()
}

// Baseline is the sensor's dynamic baseline compensation state, as raw
// counts. Read it with Baseline() once calibration has stabilized, persist
// it, and restore it with SetBaseline() after the next power up.
type Baseline struct {
	CO2  uint16
	TVOC uint16
}

// FeatureSet identifies the product type and running feature set version of
// the sensor.
type FeatureSet struct {
	ProductType    uint8
	ProductVersion uint8
}

// Dev is a handle to an SGP30 sensor.
//
// Creating a Dev sends no bus traffic. Call InitAirQuality() to start the
// sensor's measurement mode.
type Dev struct {
	mu  sync.Mutex
	bus i2c.Bus
	d   *i2c.Dev
}

// New returns a Dev that communicates with an SGP30 on the supplied bus.
// The device address is fixed at SensorAddress. The Dev owns the bus until
// Release() is called.
func New(b i2c.Bus) (*Dev, error) {
	return &Dev{bus: b, d: &i2c.Dev{Bus: b, Addr: SensorAddress}}, nil
}

// Release returns ownership of the underlying bus to the caller. The Dev
// must not be used afterwards. No bus traffic is sent.
func (d *Dev) Release() i2c.Bus {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := d.bus
	d.bus = nil
	d.d = nil
	return b
}

// InitAirQuality starts the sensor's air quality measurement mode. It must
// be called once after power up, before Measure(). After initialization the
// datasheet requires Measure() to be called at 1s intervals to keep the
// baseline compensation algorithm running.
func (d *Dev) InitAirQuality() error {
	_, err := d.sendCommand(cmdInitAirQuality, nil)
	return err
}

// Measure reads the current air quality values. During the first 15s after
// InitAirQuality() the sensor returns the default values of 400ppm CO₂ and
// 0ppb TVOC while it warms up.
func (d *Dev) Measure() (Env, error) {
	words, err := d.sendCommand(cmdMeasureAirQuality, nil)
	if err != nil {
		return Env{}, err
	}
	return Env{CO2: CO2(words[0]), TVOC: TVOC(words[1])}, nil
}

// Baseline reads the current baseline compensation values.
func (d *Dev) Baseline() (Baseline, error) {
	words, err := d.sendCommand(cmdGetBaseline, nil)
	if err != nil {
		return Baseline{}, err
	}
	return Baseline{CO2: words[0], TVOC: words[1]}, nil
}

// SetBaseline restores previously read baseline compensation values.
func (d *Dev) SetBaseline(b Baseline) error {
	_, err := d.sendCommand(cmdSetBaseline, []uint16{b.CO2, b.TVOC})
	return err
}

// TVOCInceptiveBaseline reads the inceptive baseline used for better
// accuracy of TVOC measurements on feature set 0x22 and later.
func (d *Dev) TVOCInceptiveBaseline() (uint16, error) {
	words, err := d.sendCommand(cmdGetTVOCBaseline, nil)
	if err != nil {
		return 0, err
	}
	return words[0], nil
}

// SetTVOCBaseline restores a previously read TVOC inceptive baseline.
func (d *Dev) SetTVOCBaseline(baseline uint16) error {
	_, err := d.sendCommand(cmdSetTVOCBaseline, []uint16{baseline})
	return err
}

// MeasureRaw reads the raw H2 signal, before the compensation algorithms
// are applied.
func (d *Dev) MeasureRaw() (uint16, error) {
	words, err := d.sendCommand(cmdMeasureRaw, nil)
	if err != nil {
		return 0, err
	}
	return words[0], nil
}

// SelfTest runs the sensor's built-in self test and reports whether it
// passed. The test takes 220ms.
func (d *Dev) SelfTest() (bool, error) {
	words, err := d.sendCommand(cmdSelfTest, nil)
	if err != nil {
		return false, err
	}
	return words[0] == selfTestPass, nil
}

// SetAbsoluteHumidity sets the absolute humidity, in g/m³, used for on-chip
// humidity compensation. The value is sent as an 8.8 fixed point number, so
// it must be in [0, 256). Returns ErrFixedPointRange without touching the
// bus if it is not.
func (d *Dev) SetAbsoluteHumidity(humidity float64) error {
	fixed, err := toFixedPoint88(humidity)
	if err != nil {
		return err
	}
	_, err = d.sendCommand(cmdSetHumidity, []uint16{fixed})
	return err
}

// FeatureSet reads the product type and feature set version of the sensor.
func (d *Dev) FeatureSet() (FeatureSet, error) {
	words, err := d.sendCommand(cmdGetFeatureSet, nil)
	if err != nil {
		return FeatureSet{}, err
	}
	return FeatureSet{
		ProductType:    uint8(words[0] >> 12),
		ProductVersion: uint8(words[0]),
	}, nil
}

// SerialNumber reads the 48-bit factory set serial number of the sensor.
func (d *Dev) SerialNumber() (uint64, error) {
	words, err := d.sendCommand(cmdGetSerial, nil)
	if err != nil {
		return 0, err
	}
	return uint64(words[0])<<32 | uint64(words[1])<<16 | uint64(words[2]), nil
}

// Halt implements conn.Resource. The sensor has no low power command, so no
// bus traffic is sent.
func (d *Dev) Halt() error {
	return nil
}

func (d *Dev) String() string {
	return "sgp30"
}

// All commands to read or write to the sensor go through this function. Each
// argument word is framed as two big-endian bytes followed by its CRC, and
// each word of the response frame is validated the same way.
func (d *Dev) sendCommand(cmd command, args []uint16) ([]uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.d == nil {
		return nil, errReleased
	}

	w := make([]byte, 2, 2+3*len(args))
	w[0] = byte(cmd.opcode >> 8)
	w[1] = byte(cmd.opcode)
	for _, val := range args {
		w = append(w, byte(val>>8), byte(val))
		w = append(w, crc8(w[len(w)-2:]))
	}
	if err := d.d.Tx(w, nil); err != nil {
		return nil, fmt.Errorf("sgp30 cmd 0x%04x: %w", cmd.opcode, err)
	}

	// The sensor NAKs reads until its internal processing is done, so wait
	// out the documented measurement duration before pulling the response.
	time.Sleep(cmd.settle)

	if cmd.responseSize == 0 {
		return nil, nil
	}
	r := make([]byte, cmd.responseSize)
	if err := d.d.Tx(nil, r); err != nil {
		return nil, fmt.Errorf("sgp30 cmd 0x%04x: %w", cmd.opcode, err)
	}

	words := make([]uint16, cmd.responseSize/3)
	for ix := range words {
		if crc8(r[ix*3:ix*3+2]) != r[ix*3+2] {
			return nil, fmt.Errorf("sgp30 cmd 0x%04x word %d: %w", cmd.opcode, ix, ErrInvalidCRC)
		}
		words[ix] = uint16(r[ix*3])<<8 | uint16(r[ix*3+1])
	}
	return words, nil
}

var _ conn.Resource = &Dev{}
