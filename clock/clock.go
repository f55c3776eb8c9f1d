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

// Package clock implements the cooperative scheduler every machine's
// emulator thread runs: a fixed, insertion-ordered set of Clockable
// participants (CPU, video chip, CIA/PIA, audio...) ticked one at a time,
// each accumulating a cycle balance, the one furthest behind going next.
// This is the machine's single mutator thread; the UI and monitor
// communicate with it only through the pause/terminate protocol described
// in package clock's exported methods, never by calling into a Clockable
// directly.
package clock

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cdio-go/caio/assert"
)

// Clockable is one participant in the scheduler: a CPU, a video chip, a
// CIA/PIA, an audio generator. Tick runs the participant for as long as its
// own internal logic decides, and returns the number of clock cycles that
// consumed. A return of 0 tells the scheduler this participant is done and
// the whole clock should terminate (eg. the CPU hit an unrecoverable fault).
type Clockable interface {
	Tick(c *Clock) int
}

type participant struct {
	name      string
	clockable Clockable
	balance   int64
}

// Clock runs the cooperative scheduler described by the machine's
// concurrency model: one Clockable ticks at a time, selected by smallest
// cycle balance, ties broken by insertion order. Ordering is part of the
// machine's contract with its chips and must not be allowed to change
// silently — callers add participants in the order the machine's chips
// expect to be ticked.
type Clock struct {
	mu           sync.Mutex
	cond         *sync.Cond
	participants []*participant

	frequencyHz float64
	pacingEvery uint64
	delay       atomic.Uint64 // bits of a float64; 0 disables pacing

	cycles atomic.Uint64

	paused    atomic.Bool
	pauseAck  atomic.Bool
	terminate atomic.Bool

	wallStart  time.Time
	wallCycles uint64

	runGoroutine atomic.Uint64
}

// New returns a Clock running at frequencyHz cycles per second, checking
// pacing and the pause/terminate flags every pacingEvery scheduling steps.
func New(frequencyHz float64, pacingEvery uint64) *Clock {
	if pacingEvery == 0 {
		pacingEvery = 1000
	}
	c := &Clock{
		frequencyHz: frequencyHz,
		pacingEvery: pacingEvery,
	}
	c.cond = sync.NewCond(&c.mu)
	c.SetDelay(1)
	return c
}

// Add registers a Clockable participant. Participants are ticked in the
// order they were added whenever their cycle balances tie; call Add for
// every participant before the first call to Run.
func (c *Clock) Add(name string, clockable Clockable) {
	c.participants = append(c.participants, &participant{name: name, clockable: clockable})
}

// SetDelay scales the target wall-clock rate: 1 runs at the nominal
// frequency, 2 runs at half speed, 0 disables wall-clock pacing entirely
// (run as fast as the host can).
func (c *Clock) SetDelay(factor float64) {
	c.delay.Store(math.Float64bits(factor))
}

func (c *Clock) delayFactor() float64 {
	return math.Float64frombits(c.delay.Load())
}

// Cycles returns the total number of scheduling steps run so far.
func (c *Clock) Cycles() uint64 {
	return c.cycles.Load()
}

// Stop requests termination; the next scheduler iteration (or the current
// one, if blocked on pause) exits Run. Safe to call from any thread.
func (c *Clock) Stop() {
	c.terminate.Store(true)
	c.mu.Lock()
	c.cond.Broadcast()
	c.mu.Unlock()
}

// PauseWait requests (pause=true) or releases (pause=false) a pause. When
// requesting a pause, PauseWait blocks until the scheduler has confirmed
// the pause has taken effect, so that the caller (the UI thread, typically
// around a reset() action) can safely mutate machine state on return.
// Must not be called from the goroutine running Run: that goroutine can
// never observe its own pauseAck and would block forever.
func (c *Clock) PauseWait(pause bool) {
	if pause && c.runGoroutine.Load() != 0 && assert.GetGoRoutineID() == c.runGoroutine.Load() {
		panic("clock: PauseWait(true) called from the Run goroutine")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if pause {
		c.paused.Store(true)
		for !c.pauseAck.Load() && !c.terminate.Load() {
			c.cond.Wait()
		}
		return
	}

	c.paused.Store(false)
	c.pauseAck.Store(false)
	c.cond.Broadcast()
}

// Run executes the scheduler loop until Stop is called, a Clockable's Tick
// returns 0, or a paused Run is asked to terminate while blocked. Run is
// meant to be the entire body of the emulator thread.
func (c *Clock) Run() {
	var step uint64
	c.wallStart = time.Now()
	c.runGoroutine.Store(assert.GetGoRoutineID())

	for {
		if c.terminate.Load() {
			return
		}

		if c.paused.Load() {
			c.mu.Lock()
			c.pauseAck.Store(true)
			c.cond.Broadcast()
			for c.paused.Load() && !c.terminate.Load() {
				c.cond.Wait()
			}
			c.mu.Unlock()
			continue
		}

		if len(c.participants) == 0 {
			return
		}

		next := c.participants[0]
		for _, p := range c.participants[1:] {
			if p.balance < next.balance {
				next = p
			}
		}

		n := next.clockable.Tick(c)
		if n == 0 {
			c.terminate.Store(true)
			return
		}
		next.balance += int64(n)

		c.cycles.Add(1)
		step++
		c.wallCycles++

		if step%c.pacingEvery == 0 {
			c.pace()
		}
	}
}

// pace sleeps if the wall clock is ahead of schedule relative to
// frequencyHz and the current delay factor.
func (c *Clock) pace() {
	delay := c.delayFactor()
	if delay <= 0 || c.frequencyHz <= 0 {
		return
	}

	target := time.Duration(float64(c.wallCycles) / c.frequencyHz * delay * float64(time.Second))
	elapsed := time.Since(c.wallStart)
	if target > elapsed {
		time.Sleep(target - elapsed)
	}
}
