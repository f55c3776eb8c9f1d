package cartridge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cdio-go/caio/cartridge"
	"github.com/cdio-go/caio/test"
)

func TestDigestStable(t *testing.T) {
	d1 := cartridge.Digest([]byte("hello"))
	d2 := cartridge.Digest([]byte("hello"))
	test.ExpectEquality(t, d1, d2)
	test.ExpectEquality(t, 64, len(d1))
}

func TestPersistentRAMMissingIsZeroFilled(t *testing.T) {
	const appname = "caio-cartridge-test-missing"
	defer cleanupAppdir(t, appname)

	data, err := cartridge.LoadPersistentRAM(appname, "deadbeef", 16)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, 16, len(data))
	for _, b := range data {
		test.ExpectEquality(t, uint8(0), b)
	}
}

func TestPersistentRAMSaveThenLoad(t *testing.T) {
	const appname = "caio-cartridge-test-roundtrip"
	defer cleanupAppdir(t, appname)

	want := []byte{1, 2, 3, 4}
	test.ExpectSuccess(t, cartridge.SavePersistentRAM(appname, "abc123", want))

	got, err := cartridge.LoadPersistentRAM(appname, "abc123", len(want))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, want, got)
}

func cleanupAppdir(t *testing.T, appname string) {
	t.Helper()
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	os.RemoveAll(filepath.Join(home, ".config", appname))
}
