package test_test

import (
	"errors"
	"testing"

	"github.com/cdio-go/caio/test"
)

func TestExpectFailure(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("test"))
}

func TestExpectSuccess(t *testing.T) {
	test.ExpectSuccess(t, true)
	var err error
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)
}

func TestExpectEquality(t *testing.T) {
	test.ExpectEquality(t, 10, 5+5)
	test.ExpectEquality(t, true, true)
	test.ExpectEquality(t, true, !false)
}

func TestExpectInequality(t *testing.T) {
	test.ExpectInequality(t, 11, 5+5)
	test.ExpectInequality(t, true, false)
}

func TestExpectApproximate(t *testing.T) {
	test.ExpectApproximate(t, 10, 10.05, 0.1)
}

func TestCappedWriter(t *testing.T) {
	c, err := test.NewCappedWriter(10)
	test.ExpectEquality(t, nil, err)
	test.ExpectEquality(t, "", c.String())

	c.Write([]byte("a"))
	test.ExpectEquality(t, "a", c.String())

	c.Write([]byte("bcd"))
	test.ExpectEquality(t, "abcd", c.String())

	c.Write([]byte("efghij"))
	test.ExpectEquality(t, "abcdefghij", c.String())

	c.Write([]byte("klm"))
	test.ExpectEquality(t, "abcdefghij", c.String())

	c.Reset()
	test.ExpectEquality(t, "", c.String())
}
