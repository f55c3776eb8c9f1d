package clock_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/cdio-go/caio/clock"
	"github.com/cdio-go/caio/test"
)

type countingTicker struct {
	order  *[]string
	name   string
	cycles int
	limit  int
	calls  int
	onTick func()
}

func (c *countingTicker) Tick(_ *clock.Clock) int {
	c.calls++
	*c.order = append(*c.order, c.name)
	if c.onTick != nil {
		c.onTick()
	}
	if c.calls > c.limit {
		return 0
	}
	return c.cycles
}

func TestInsertionOrderTieBreak(t *testing.T) {
	var order []string
	a := &countingTicker{order: &order, name: "a", cycles: 1, limit: 1000}
	b := &countingTicker{order: &order, name: "b", cycles: 1, limit: 1000}

	c := clock.New(1000, 1000000)
	c.Add("a", a)
	c.Add("b", b)

	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	c.Stop()
	<-done

	test.ExpectInequality(t, 0, len(order))
	// with equal balances throughout, a (added first) should always go
	// before b on every tie.
	for i := 0; i+1 < len(order); i += 2 {
		test.ExpectEquality(t, "a", order[i])
	}
}

func TestSmallestBalanceGoesNext(t *testing.T) {
	var order []string
	// slow ticks many cycles per call (falls behind rarely); fast ticks
	// few cycles per call (its balance stays low, so it should be picked
	// more often).
	fast := &countingTicker{order: &order, name: "fast", cycles: 1, limit: 5000}
	slow := &countingTicker{order: &order, name: "slow", cycles: 100, limit: 5000}

	c := clock.New(0, 1000000) // frequency 0 disables pacing overhead in this test
	c.SetDelay(0)
	c.Add("fast", fast)
	c.Add("slow", slow)

	done := make(chan struct{})
	var stopped atomic.Bool
	go func() {
		c.Run()
		stopped.Store(true)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	c.Stop()
	<-done

	fastCount, slowCount := 0, 0
	for _, n := range order {
		if n == "fast" {
			fastCount++
		} else {
			slowCount++
		}
	}
	test.ExpectInequality(t, true, fastCount < slowCount)
}

func TestTickZeroTerminates(t *testing.T) {
	var order []string
	once := &countingTicker{order: &order, name: "once", cycles: 1, limit: 0}

	c := clock.New(1000, 1)
	c.Add("once", once)

	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("clock did not terminate when Tick returned 0")
	}
}

func TestPauseWait(t *testing.T) {
	var order []string
	ticker := &countingTicker{order: &order, name: "t", cycles: 1, limit: 1000000}

	c := clock.New(0, 1)
	c.SetDelay(0)
	c.Add("t", ticker)

	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()

	c.PauseWait(true)
	countAfterPause := ticker.calls
	time.Sleep(10 * time.Millisecond)
	test.ExpectEquality(t, countAfterPause, ticker.calls)

	c.PauseWait(false)
	time.Sleep(10 * time.Millisecond)
	test.ExpectInequality(t, countAfterPause, ticker.calls)

	c.Stop()
	<-done
}
