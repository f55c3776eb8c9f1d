package errors_test

import (
	"testing"

	"github.com/cdio-go/caio/errors"
	"github.com/cdio-go/caio/test"
)

func TestErrorf(t *testing.T) {
	err := errors.Errorf("not yet implemented")
	test.ExpectEquality(t, "not yet implemented", err.Error())
	test.ExpectEquality(t, errors.Unknown, errors.KindOf(err))
}

func TestNewKind(t *testing.T) {
	err := errors.New(errors.InvalidCartridge, "unrecognised CRT signature")
	test.ExpectEquality(t, errors.InvalidCartridge, errors.KindOf(err))
	test.ExpectSuccess(t, errors.HasKind(err, errors.InvalidCartridge))
	test.ExpectFailure(t, errors.HasKind(err, errors.IOError))
}

func TestDeduplication(t *testing.T) {
	inner := errors.Errorf("not yet implemented")
	outer := errors.Errorf("debugger error: %v", inner)
	test.ExpectEquality(t, "debugger error: not yet implemented", outer.Error())
}

func TestHead(t *testing.T) {
	err := errors.Errorf("invalid target (%v)", "PC")
	test.ExpectEquality(t, "invalid target (%v)", errors.Head(err))

	plain := errors.New(errors.IOError, "disk full")
	test.ExpectEquality(t, "disk full", errors.Head(plain))
}

func TestIsAny(t *testing.T) {
	curated := errors.Errorf("test")
	test.ExpectSuccess(t, errors.IsAny(curated))
	test.ExpectFailure(t, errors.IsAny(nil))
}

func TestIs(t *testing.T) {
	err := errors.Errorf("invalid target (%v)", "PC")
	test.ExpectSuccess(t, errors.Is(err, "invalid target (%v)"))
	test.ExpectFailure(t, errors.Is(err, "something else"))
}

func TestHas(t *testing.T) {
	inner := errors.Errorf("not yet implemented")
	outer := errors.New(errors.InvalidArgument, "command error: %v", inner)
	test.ExpectSuccess(t, errors.Has(outer, "not yet implemented"))
	test.ExpectFailure(t, errors.Has(outer, "no such head"))
}

func TestKindString(t *testing.T) {
	test.ExpectEquality(t, "invalid cartridge", errors.InvalidCartridge.String())
	test.ExpectEquality(t, "error", errors.Unknown.String())
}
