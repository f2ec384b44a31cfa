package domain

import (
	"errors"
	"strings"
)

var ErrICDCodeEmpty = errors.New("icd code must not be empty")

type ICDCodeFormatError struct {
	Value string
}

func (e *ICDCodeFormatError) Error() string {
	return "icd code " + e.Value + " is missing the separator dot"
}

// ICDCode is a normalized ICD classification code. Raw input is trimmed
// and uppercased; when the dot is missing and the code is long enough
// it is inserted before the last character ("B201" becomes "B20.1").
type ICDCode struct {
	value string
}

type ICDCodeOptions struct {
	RequiresDot bool
	AutoDot     bool
}

func NewICDCode(raw string) (ICDCode, error) {
	return NewICDCodeWithOptions(raw, ICDCodeOptions{AutoDot: true})
}

func NewICDCodeWithOptions(raw string, opts ICDCodeOptions) (ICDCode, error) {
	if raw == "" {
		return ICDCode{}, ErrICDCodeEmpty
	}
	sanitized := strings.ToUpper(strings.TrimSpace(raw))
	if opts.RequiresDot && !strings.Contains(sanitized, ".") {
		return ICDCode{}, &ICDCodeFormatError{Value: sanitized}
	}
	if opts.AutoDot && !strings.Contains(sanitized, ".") && len(sanitized) >= 3 {
		sanitized = sanitized[:len(sanitized)-1] + "." + sanitized[len(sanitized)-1:]
	}
	return ICDCode{value: sanitized}, nil
}

func (c ICDCode) String() string { return c.value }

// Normalized returns the code without dots.
func (c ICDCode) Normalized() string { return strings.ReplaceAll(c.value, ".", "") }

// IsEquivalent compares two codes ignoring dot placement.
func (c ICDCode) IsEquivalent(other ICDCode) bool { return c.Normalized() == other.Normalized() }
