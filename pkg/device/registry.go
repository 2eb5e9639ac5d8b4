package device

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Registry errors.
var (
	ErrDuplicateType     = errors.New("duplicate family type")
	ErrInvalidFamily     = errors.New("invalid family descriptor")
	ErrUnknownFamily     = errors.New("unknown family type")
	ErrUnsupportedDevice = errors.New("unsupported device")
	ErrAmbiguousDevice   = errors.New("ambiguous device")
)

// Registry is an ordered, read-only set of families.
// It is safe for concurrent use.
type Registry struct {
	families []*Family
	byType   map[string]*Family
}

// NewRegistry validates families and returns a registry listing them in
// the given order.
func NewRegistry(families []*Family) (*Registry, error) {
	r := &Registry{
		families: make([]*Family, 0, len(families)),
		byType:   make(map[string]*Family, len(families)),
	}
	for _, f := range families {
		if err := validateFamily(f); err != nil {
			return nil, err
		}
		if _, dup := r.byType[f.Type]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateType, f.Type)
		}
		r.byType[f.Type] = f
		r.families = append(r.families, f)
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(families []*Family) *Registry {
	r, err := NewRegistry(families)
	if err != nil {
		panic(err)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of built-in families.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = MustNewRegistry(Families)
	})
	return defaultRegistry
}

func validateFamily(f *Family) error {
	if f == nil {
		return fmt.Errorf("%w: nil", ErrInvalidFamily)
	}
	if f.Type == "" {
		return fmt.Errorf("%w: empty type", ErrInvalidFamily)
	}
	if f.Codec.Encode == nil {
		return fmt.Errorf("%w: %q has no encoder", ErrInvalidFamily, f.Type)
	}
	if f.Readable() != (f.ReadMode != ReadNone) {
		return fmt.Errorf("%w: %q read mode %s does not match codec", ErrInvalidFamily, f.Type, f.ReadMode)
	}
	if f.ReadMode == ReadNotify && len(f.ReadCommand) == 0 {
		return fmt.Errorf("%w: %q needs a read command", ErrInvalidFamily, f.Type)
	}
	if f.Rule.Kind == RuleCustom && f.Rule.Func == nil {
		return fmt.Errorf("%w: %q has an empty custom rule", ErrInvalidFamily, f.Type)
	}
	return nil
}

// All returns the families in listing order.
func (r *Registry) All() []*Family {
	out := make([]*Family, len(r.families))
	copy(out, r.families)
	return out
}

// Types returns the family types in listing order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.families))
	for i, f := range r.families {
		out[i] = f.Type
	}
	return out
}

// Lookup returns the family with the given type.
func (r *Registry) Lookup(typ string) (*Family, bool) {
	f, ok := r.byType[typ]
	return f, ok
}

// Get is like Lookup but returns ErrUnknownFamily for unknown types.
func (r *Registry) Get(typ string) (*Family, error) {
	f, ok := r.byType[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, typ)
	}
	return f, nil
}

// Match returns every family whose rule matches adv, most specific first.
// Families in the same rule tier keep their listing order.
func (r *Registry) Match(adv Advertisement) []*Family {
	var matched []*Family
	for _, f := range r.families {
		if f.Rule.Matches(adv) {
			matched = append(matched, f)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Rule.Tier() < matched[j].Rule.Tier()
	})
	return matched
}

// ServiceUUIDs returns each distinct UUID that a rule inspects, either in
// the advertised service list or as a service data key. Scanners that can
// only check for individual UUIDs use this list.
func (r *Registry) ServiceUUIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, f := range r.families {
		switch f.Rule.Kind {
		case RuleServiceUUID, RuleServiceData:
			if !seen[f.Rule.UUID] {
				seen[f.Rule.UUID] = true
				out = append(out, f.Rule.UUID)
			}
		}
	}
	return out
}

// Len returns the number of families.
func (r *Registry) Len() int {
	return len(r.families)
}
