// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package zx80 implements the ZX80/ZX81 cassette codec: a pulse-count
// encoding in which a "0" bit is a train of four pulses and a "1" bit a
// train of nine, each byte's bits sent MSB-first and separated by a fixed
// low gap. Package zx80 supplies two Backends over this same codec: one for
// the 4K ROM's single anonymous file (.o), one for the 8K ROM's named,
// multi-file directory (.p).
package zx80

import "github.com/cdio-go/caio/cassette"

// Timing constants, in cycles of the codec's own clock (one cycle per
// Read/Write call, nominally one microsecond at the ZX80/ZX81's cassette
// baud rate).
const (
	SyncPulseTimeMin = 1000
	SyncPulseTimeMax = 1800
	SyncDuration     = 1_000_000
	DataPulseTime    = 150
	Bit0PulseCount   = 4
	Bit1PulseCount   = 9
	BitSeparatorTime = 1300
)

type state int

const (
	stateInit state = iota
	stateSync
	stateData
	stateEnd
)

// Cassette is the ZX80/ZX81 codec shared by both file backends: it drives
// a Backend's Transmit/Receive through the RX (tape-to-CPU) and TX
// (CPU-to-tape) pulse state machines described in the header this package
// is grounded on.
type Cassette struct {
	backend cassette.Backend

	rxState state
	rxTime  uint64
	rxByte  uint8
	rxBit   uint8
	rxCount int

	txState state
	txTime  uint64
	txPulse bool
	txCount int
	txBit   uint8
	txByte  uint8

	tick uint64
}

// NewCassette returns a codec backed by backend. backend must not be nil.
func NewCassette(backend cassette.Backend) *Cassette {
	return &Cassette{backend: backend}
}

// Restart resets both state machines to Init, ready to begin a fresh
// load/save without re-opening the backend.
func (c *Cassette) Restart() {
	c.rxState = stateInit
	c.txState = stateInit
}

// IsIdle reports whether neither state machine is mid-transfer.
func (c *Cassette) IsIdle() bool {
	rxIdle := c.rxState == stateInit || c.rxState == stateEnd
	txIdle := c.txState == stateInit || c.txState == stateEnd
	return rxIdle && txIdle
}

// Read advances the RX (tape-to-CPU) state machine by one tick and
// returns the pulse level the tape is currently asserting.
func (c *Cassette) Read() bool {
	now := c.tick
	c.tick++
	elapsed := now - c.rxTime

	switch c.rxState {
	case stateInit:
		c.backend.Receive(cassette.RxRewind)
		c.rxState = stateSync
		c.rxTime = now
		return false

	case stateSync:
		if elapsed < SyncDuration {
			return false
		}
		c.rxCount = 0
		c.rxBit = 0
		c.rxState = stateData
		c.rxTime = now
		elapsed = 0
		fallthrough

	case stateData:
		if c.rxCount == 0 {
			if elapsed < BitSeparatorTime {
				return false
			}
			if c.rxBit == 0 {
				rx := c.backend.Receive(cassette.RxRead)
				if rx == cassette.EndOfFile {
					rx = c.backend.Receive(cassette.RxRead)
					if rx == cassette.EndOfTape {
						c.rxState = stateEnd
						return false
					}
				}
				c.rxByte = uint8(rx)
				c.rxBit = 128
			}

			bit := c.rxByte&c.rxBit != 0
			if bit {
				c.rxCount = Bit1PulseCount
			} else {
				c.rxCount = Bit0PulseCount
			}
			c.rxBit >>= 1
			c.rxTime = now
			elapsed = 0
		}

		if elapsed < DataPulseTime {
			return true
		}
		if elapsed < 2*DataPulseTime {
			return false
		}

		c.rxTime = now
		c.rxCount--

		if c.rxCount == 0 && c.rxBit == 0 {
			switch c.backend.Receive(cassette.RxPeek) {
			case cassette.EndOfFile:
				c.rxState = stateSync
			case cassette.EndOfTape:
				c.rxState = stateEnd
			}
		}
		return false

	default: // stateEnd
		return false
	}
}

// Write advances the TX (CPU-to-tape) state machine by one tick, feeding
// it the pulse level the CPU just asserted.
func (c *Cassette) Write(pulse bool) {
	now := c.tick
	c.tick++
	elapsed := now - c.txTime
	edge := pulse != c.txPulse
	if edge {
		c.txTime = now
		c.txPulse = pulse
	}

	switch c.txState {
	case stateInit:
		if !pulse && elapsed > SyncPulseTimeMin && elapsed < SyncPulseTimeMax {
			c.txState = stateSync
		}

	case stateSync:
		if elapsed < SyncPulseTimeMin {
			c.txState = stateEnd
			return
		}
		if pulse {
			c.txBit = 128
			c.txCount = 0
			c.txByte = 0
			c.txPulse = true
			c.txState = stateData
		}

	case stateData:
		if !edge {
			if elapsed <= SyncPulseTimeMax {
				return
			}
			if c.txBit == 1 {
				if c.txCount != Bit0PulseCount {
					c.txByte |= 1
				}
				c.backend.Transmit(int(c.txByte))
			}
			c.backend.Transmit(cassette.EndOfFile)
			c.txState = stateEnd
			return
		}

		if elapsed < BitSeparatorTime {
			if !pulse {
				c.txCount++
			}
			return
		}

		if c.txCount != Bit0PulseCount && c.txCount != Bit1PulseCount {
			c.backend.Transmit(cassette.EndOfFile)
			c.txState = stateEnd
			return
		}

		if c.txCount != Bit0PulseCount {
			c.txByte |= c.txBit
		}
		c.txCount = 0
		c.txBit >>= 1
		if c.txBit != 0 {
			return
		}

		c.backend.Transmit(int(c.txByte))
		c.txBit = 128
		c.txByte = 0
	}
}
