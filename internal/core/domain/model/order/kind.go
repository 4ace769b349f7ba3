package order

import (
	"errors"
	"fmt"
	"strings"

	"cafe/internal/pkg/errs"
)

// ErrUnknownKind is returned by ParseKind for anything that is not on the menu.
var ErrUnknownKind = errors.New("only 'tea' or 'coffee' are allowed")

// Kind is a drink on the menu.
type Kind int

const (
	// UnknownKind is the zero value and is never valid.
	UnknownKind Kind = iota
	Tea
	Coffee
)

func getKindStrings() map[Kind]string {
	//nolint:exhaustive // UnknownKind has no menu name
	return map[Kind]string{
		Tea:    "tea",
		Coffee: "coffee",
	}
}

// Kinds returns every drink on the menu in a stable order.
func Kinds() []Kind {
	return []Kind{Tea, Coffee}
}

// ParseKind maps a menu name to its Kind, ignoring case and surrounding spaces.
//
// Example:
//
//	kind, err := order.ParseKind("Coffee") // order.Coffee, nil
//	_, err = order.ParseKind("juice")       // wraps ErrUnknownKind
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for kind, str := range getKindStrings() {
		if str == name {
			return kind, nil
		}
	}
	return UnknownKind, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Validate checks that the kind is on the menu.
func (k Kind) Validate() error {
	if _, ok := getKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid drink", k))
	}
	return nil
}

// String returns the menu name, or "unknown" for invalid values.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}
