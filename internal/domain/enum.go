package domain

import "fmt"

type InvalidEnumError struct {
	Kind  string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s value %q", e.Kind, e.Value)
}

func parseEnum[T ~string](kind, raw string, allowed ...T) (T, error) {
	for _, a := range allowed {
		if string(a) == raw {
			return a, nil
		}
	}
	var zero T
	return zero, &InvalidEnumError{Kind: kind, Value: raw}
}
