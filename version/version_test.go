package version_test

import (
	"testing"

	"github.com/QuTech-Delft/libqasm-sub003/version"
)

func TestScanMajorOnly(t *testing.T) {
	v, err := version.Scan("version 3")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if v != (version.Triple{Major: 3, Minor: 0}) {
		t.Fatalf("got %+v", v)
	}
}

func TestScanMajorMinor(t *testing.T) {
	v, err := version.Scan("version 3.1\nqubit q\n")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if v != (version.Triple{Major: 3, Minor: 1}) {
		t.Fatalf("got %+v", v)
	}
}

func TestScanSkipsLeadingBlankLines(t *testing.T) {
	v, err := version.Scan("\n\n  \nversion 3.0\n")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if v != (version.Triple{Major: 3, Minor: 0}) {
		t.Fatalf("got %+v", v)
	}
}

func TestScanRejectsMissingHeader(t *testing.T) {
	_, err := version.Scan("qubit q\n")
	if _, ok := err.(*version.ScanError); !ok {
		t.Fatalf("err = %v, want ScanError", err)
	}
}

func TestScanRejectsNegative(t *testing.T) {
	_, err := version.Scan("version -1")
	if _, ok := err.(*version.ScanError); !ok {
		t.Fatalf("err = %v, want ScanError", err)
	}
}

func TestScanRejectsEmptySource(t *testing.T) {
	_, err := version.Scan("")
	if _, ok := err.(*version.ScanError); !ok {
		t.Fatalf("err = %v, want ScanError", err)
	}
}

func TestCompareMajorDominates(t *testing.T) {
	a := version.Triple{Major: 3, Minor: 1}
	b := version.Triple{Major: 4, Minor: 0}
	if a.Compare(b) >= 0 {
		t.Fatalf("3.1 should compare less than 4.0")
	}
}

func TestCompareMinorWithinSameMajor(t *testing.T) {
	a := version.Triple{Major: 3, Minor: 0}
	b := version.Triple{Major: 3, Minor: 1}
	if a.Compare(b) >= 0 {
		t.Fatalf("3.0 should compare less than 3.1")
	}
	if b.Compare(a) <= 0 {
		t.Fatalf("3.1 should compare greater than 3.0")
	}
	if a.Compare(a) != 0 {
		t.Fatalf("3.0 should compare equal to itself")
	}
}

func TestString(t *testing.T) {
	if got, want := (version.Triple{Major: 3, Minor: 0}).String(), "3.0"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := (version.Triple{Major: 3, Minor: 1}).String(), "3.1"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
