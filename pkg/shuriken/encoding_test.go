package shuriken

import (
	"errors"
	"testing"
)

func TestCheckCString(t *testing.T) {
	if err := checkCString("LDexParserTest;->printMessage()V"); err != nil {
		t.Fatalf("valid name rejected: %v", err)
	}
	if err := checkCString("bad\x00name"); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("interior NUL: got %v, want ErrInvalidEncoding", err)
	}
	if err := checkCString("bad\xff\xfename"); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("invalid UTF-8: got %v, want ErrInvalidEncoding", err)
	}
}

func TestCheckReturnedString(t *testing.T) {
	if err := checkReturnedString("plain ascii"); err != nil {
		t.Fatalf("ascii rejected: %v", err)
	}
	if err := checkReturnedString("útf-8 ✓"); err != nil {
		t.Fatalf("multibyte UTF-8 rejected: %v", err)
	}
	// MUTF-8 encodes supplementary characters as a CESU-8 surrogate pair,
	// invalid as UTF-8. Both the indexed and the bulk accessor route through
	// this check, so they classify such an entry identically.
	surrogatePair := "\xed\xa0\xbd\xed\xb8\x80"
	if err := checkReturnedString(surrogatePair); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("surrogate pair: got %v, want ErrInvalidEncoding", err)
	}
	// MUTF-8 also encodes U+0000 as the overlong two-byte form.
	if err := checkReturnedString("a\xc0\x80b"); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("overlong NUL: got %v, want ErrInvalidEncoding", err)
	}
}
