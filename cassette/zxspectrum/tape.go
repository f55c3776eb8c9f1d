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

// Package zxspectrum implements the ZX-Spectrum ".tap" cassette codec: a
// pilot tone followed by two sync edges followed by pulse-duration-coded
// data bits, one header/data block pair per program. See tapfile.go for
// the on-disk block format and tape.go for the pulse-level state machines
// sitting on top of it.
package zxspectrum

import "github.com/cdio-go/caio/cassette"

// Pulse timing constants, in cycles of the codec's own clock (one cycle
// per Read/Write call).
const (
	PilotPulseTime        = 619
	PilotPulseTimeMin     = PilotPulseTime - 20
	PilotPulseTimeMax     = PilotPulseTime + 20
	SyncLoPulseTime       = 210
	SyncLoPulseTimeMin    = SyncLoPulseTime - 10
	SyncLoPulseTimeMax    = SyncLoPulseTime + 10
	SyncHiPulseTime       = 190
	SyncHiPulseTimeMin    = SyncHiPulseTime - 10
	SyncHiPulseTimeMax    = SyncHiPulseTime + 10
	Bit0PulseTime         = 244
	Bit0PulseTimeMin      = Bit0PulseTime - 20
	Bit0PulseTimeMax      = Bit0PulseTime + 20
	Bit1PulseTime         = 488
	Bit1PulseTimeMin      = Bit1PulseTime - 20
	Bit1PulseTimeMax      = Bit1PulseTime + 20
	PilotPulseCountHeader = 4032
	PilotPulseCountData   = 1612
)

type edgeKind int

const (
	edgeOther edgeKind = iota
	edgePilot
	edgeSyncLo
	edgeSyncHi
	edgeBit0
	edgeBit1
)

func classify(duration uint64) edgeKind {
	switch {
	case duration >= PilotPulseTimeMin && duration <= PilotPulseTimeMax:
		return edgePilot
	case duration >= SyncLoPulseTimeMin && duration <= SyncLoPulseTimeMax:
		return edgeSyncLo
	case duration >= SyncHiPulseTimeMin && duration <= SyncHiPulseTimeMax:
		return edgeSyncHi
	case duration >= Bit0PulseTimeMin && duration <= Bit0PulseTimeMax:
		return edgeBit0
	case duration >= Bit1PulseTimeMin && duration <= Bit1PulseTimeMax:
		return edgeBit1
	default:
		return edgeOther
	}
}

type rxState int

const (
	rxInit rxState = iota
	rxBlock
	rxEnd
)

type txState int

const (
	txInit txState = iota
	txPilot
	txSyncLo
	txData
	txEnd
)

// Tape is the ZX-Spectrum codec: it drives a Backend's Transmit/Receive
// through the RX (tape-to-CPU) and TX (CPU-to-tape) pulse state machines.
// RX turns each block's bytes into a pilot tone, two sync edges and
// duration-coded data pulses via a PulseQueue; TX classifies incoming
// pulse durations back into bytes.
type Tape struct {
	backend  cassette.Backend
	fastload bool

	rxState rxState
	rxQueue cassette.PulseQueue
	rxLevel bool

	txState    txState
	txTime     uint64
	txLevel    bool
	txHalf     bool
	txHalfKind edgeKind
	txBitMask  uint8
	txByte     uint8

	tick uint64
}

// NewTape returns a codec backed by backend. fastload, when true, asks
// callers driving this codec from a CPU emulation to skip pulse-level
// timing for well-known ROM load routines and inject blocks directly;
// Tape itself only exposes the flag (IsFastload) — the peephole is the
// CPU's responsibility, since only it knows its own PC and register file.
func NewTape(backend cassette.Backend, fastload bool) *Tape {
	return &Tape{backend: backend, fastload: fastload}
}

// IsFastload reports whether fast-load mode was requested.
func (t *Tape) IsFastload() bool { return t.fastload }

func (t *Tape) Restart() {
	t.rxState = rxInit
	t.rxQueue.Reset()
	t.txState = txInit
}

func (t *Tape) IsIdle() bool {
	return t.rxState != rxBlock && t.txState == txInit
}

// pushBlock appends one block's pulses (pilot, sync, data) to rxQueue,
// toggling rxLevel continuously so the whole stream is one square wave.
func (t *Tape) pushBlock(data []byte) {
	pilotCount := PilotPulseCountData
	if len(data) > 0 && data[0] == BlockTypeHeader {
		pilotCount = PilotPulseCountHeader
	}

	push := func(duration uint64) {
		t.rxLevel = !t.rxLevel
		t.rxQueue.Push(t.rxLevel, duration)
	}

	for i := 0; i < pilotCount; i++ {
		push(PilotPulseTime)
	}
	push(SyncLoPulseTime)
	push(SyncHiPulseTime)

	for _, b := range data {
		for bit := 7; bit >= 0; bit-- {
			width := uint64(Bit0PulseTime)
			if b&(1<<uint(bit)) != 0 {
				width = Bit1PulseTime
			}
			push(width)
			push(width)
		}
	}

	// One short flush edge: TX only classifies a held level's duration once
	// the *next* edge begins, so without this the very last data bit would
	// never be classified and its byte would never be transmitted.
	push(1)
}

// Read advances the RX (tape-to-CPU) state machine by one tick and
// returns the pulse level the tape is currently asserting.
func (t *Tape) Read() bool {
	switch t.rxState {
	case rxInit:
		t.backend.Receive(cassette.RxRewind)
		t.rxState = rxBlock
		fallthrough

	case rxBlock:
		if t.rxQueue.Empty() {
			data := t.nextBlock()
			if data == nil {
				t.rxState = rxEnd
				return false
			}
			t.pushBlock(data)
		}
		return t.rxQueue.Step()

	default: // rxEnd
		return false
	}
}

// nextBlock pulls the next block's bytes from the backend, one byte at a
// time via RxRead, until it reports EndOfFile (this block done) or
// EndOfTape (nothing left). Returns nil at end of tape.
func (t *Tape) nextBlock() []byte {
	var data []byte
	for {
		v := t.backend.Receive(cassette.RxRead)
		switch v {
		case cassette.EndOfFile:
			if len(data) == 0 {
				continue // backend moved to the next file; try again
			}
			return data
		case cassette.EndOfTape:
			if len(data) > 0 {
				return data
			}
			return nil
		default:
			data = append(data, byte(v))
		}
	}
}

// Write advances the TX (CPU-to-tape) state machine by one tick, feeding
// it the pulse level the CPU just asserted, and classifying the duration
// of each completed half-period against the timing buckets above.
func (t *Tape) Write(pulse bool) {
	now := t.tick
	t.tick++

	if t.txState == txEnd {
		return
	}

	if pulse == t.txLevel {
		// Level unchanged: still within the same half-period, unless it has
		// been held longer than any recognised pulse, which ends the block
		// in progress.
		if t.txState == txData && now-t.txTime > PilotPulseTimeMax {
			t.backend.Transmit(cassette.EndOfFile)
			t.txState = txInit
		}
		return
	}

	elapsed := now - t.txTime
	t.txTime = now
	t.txLevel = pulse

	kind := classify(elapsed)
	if kind == edgeOther {
		// Too short or too long to be any recognised pulse: filtered as
		// line noise rather than treated as a protocol break.
		return
	}
	t.handleEdge(kind)
}

func (t *Tape) handleEdge(kind edgeKind) {
	switch t.txState {
	case txInit:
		if kind == edgePilot {
			t.txState = txPilot
		}

	case txPilot:
		switch kind {
		case edgePilot:
		case edgeSyncLo:
			t.txState = txSyncLo
		default:
			t.txState = txInit
		}

	case txSyncLo:
		if kind == edgeSyncHi {
			t.txState = txData
			t.txBitMask = 128
			t.txByte = 0
			t.txHalf = false
		} else {
			t.txState = txInit
		}

	case txData:
		t.handleDataEdge(kind)
	}
}

func (t *Tape) handleDataEdge(kind edgeKind) {
	if kind == edgePilot {
		// A new block's pilot starts: flush nothing (a half-sent bit is a
		// protocol violation the real hardware would not produce) and
		// begin tracking the new block.
		t.backend.Transmit(cassette.EndOfFile)
		t.txState = txPilot
		return
	}

	if kind != edgeBit0 && kind != edgeBit1 {
		t.backend.Transmit(cassette.EndOfFile)
		t.txState = txEnd
		return
	}

	if !t.txHalf {
		t.txHalfKind = kind
		t.txHalf = true
		return
	}

	t.txHalf = false
	if kind != t.txHalfKind {
		t.backend.Transmit(cassette.EndOfFile)
		t.txState = txEnd
		return
	}

	if kind == edgeBit1 {
		t.txByte |= t.txBitMask
	}
	t.txBitMask >>= 1
	if t.txBitMask == 0 {
		t.backend.Transmit(int(t.txByte))
		t.txBitMask = 128
		t.txByte = 0
	}
}
