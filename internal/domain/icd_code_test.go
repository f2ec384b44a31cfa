package domain

import (
	"errors"
	"testing"
)

func TestNewICDCode_NormalizesAndAutoDots(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"F84.0", "F84.0"},
		{" f84.0 ", "F84.0"},
		{"B201", "B20.1"},
		{"b201", "B20.1"},
		{"A1", "A1"},
	}
	for _, c := range cases {
		code, err := NewICDCode(c.raw)
		if err != nil {
			t.Fatalf("NewICDCode(%q) failed: %v", c.raw, err)
		}
		if code.String() != c.want {
			t.Fatalf("NewICDCode(%q): expected %q got %q", c.raw, c.want, code.String())
		}
	}
}

func TestNewICDCode_RejectsEmpty(t *testing.T) {
	if _, err := NewICDCode(""); !errors.Is(err, ErrICDCodeEmpty) {
		t.Fatalf("expected ErrICDCodeEmpty got %v", err)
	}
}

func TestNewICDCodeWithOptions_RequiresDot(t *testing.T) {
	_, err := NewICDCodeWithOptions("B201", ICDCodeOptions{RequiresDot: true})
	var formatErr *ICDCodeFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected ICDCodeFormatError got %v", err)
	}
}

func TestICDCode_IsEquivalentIgnoresDots(t *testing.T) {
	a, _ := NewICDCode("B20.1")
	b, _ := NewICDCodeWithOptions("B201", ICDCodeOptions{})
	if !a.IsEquivalent(b) {
		t.Fatalf("expected %q and %q to be equivalent", a, b)
	}
}
