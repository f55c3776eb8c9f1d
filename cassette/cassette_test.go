package cassette_test

import (
	"testing"

	"github.com/cdio-go/caio/cassette"
	"github.com/cdio-go/caio/test"
)

func TestPulseQueueEmpty(t *testing.T) {
	var q cassette.PulseQueue
	test.ExpectEquality(t, true, q.Empty())
	test.ExpectEquality(t, false, q.Step())
}

func TestPulseQueuePlayback(t *testing.T) {
	var q cassette.PulseQueue
	q.Push(true, 2)
	q.Push(false, 3)

	got := make([]bool, 0, 5)
	for i := 0; i < 5; i++ {
		got = append(got, q.Step())
	}
	want := []bool{true, true, false, false, false}
	for i := range want {
		test.ExpectEquality(t, want[i], got[i])
	}
	test.ExpectEquality(t, true, q.Empty())
}

func TestPulseQueueZeroDurationSkipped(t *testing.T) {
	var q cassette.PulseQueue
	q.Push(true, 0)
	q.Push(false, 1)
	test.ExpectEquality(t, false, q.Step())
	test.ExpectEquality(t, true, q.Empty())
}

func TestPulseQueueReset(t *testing.T) {
	var q cassette.PulseQueue
	q.Push(true, 1)
	q.Step()
	test.ExpectEquality(t, true, q.Empty())
	q.Reset()
	test.ExpectEquality(t, true, q.Empty())
}
