package device

import (
	"fmt"
	"log/slog"
	"strings"
)

// Recognizer maps advertisements to families.
// The zero value uses the default registry and is safe for concurrent use.
type Recognizer struct {
	// Registry to match against. Nil means Default().
	Registry *Registry

	// Strict rejects advertisements matched by two families of the same
	// rule tier with ErrAmbiguousDevice instead of picking the first.
	Strict bool

	// Logger receives a debug record when more than one family matches.
	Logger *slog.Logger
}

// Recognize returns the most specific family matching adv.
// It returns ErrUnsupportedDevice when no family matches.
func (r *Recognizer) Recognize(adv Advertisement) (*Family, error) {
	reg := r.Registry
	if reg == nil {
		reg = Default()
	}

	matched := reg.Match(adv)
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDevice, describe(adv))
	}

	if len(matched) > 1 {
		r.debugLog("several families match",
			"address", adv.Address,
			"families", familyTypes(matched),
			"chosen", matched[0].Type)

		if r.Strict && matched[0].Rule.Tier() == matched[1].Rule.Tier() {
			return nil, fmt.Errorf("%w: %s matches %s and %s",
				ErrAmbiguousDevice, describe(adv), matched[0].Type, matched[1].Type)
		}
	}

	return matched[0], nil
}

// debugLog logs a debug message if logging is enabled.
func (r *Recognizer) debugLog(msg string, args ...any) {
	if r.Logger != nil {
		r.Logger.Debug(msg, args...)
	}
}

var defaultRecognizer Recognizer

// Recognize matches adv against the default registry.
func Recognize(adv Advertisement) (*Family, error) {
	return defaultRecognizer.Recognize(adv)
}

func describe(adv Advertisement) string {
	if adv.LocalName != "" {
		return fmt.Sprintf("%s (%s)", adv.Address, adv.LocalName)
	}
	if adv.Address == "" {
		return "advertisement"
	}
	return adv.Address
}

func familyTypes(fs []*Family) string {
	types := make([]string, len(fs))
	for i, f := range fs {
		types[i] = f.Type
	}
	return strings.Join(types, ", ")
}
