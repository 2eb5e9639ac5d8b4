package device

import (
	"strings"

	"github.com/google/uuid"
)

// RuleKind identifies how a Rule inspects an advertisement.
type RuleKind uint8

// Kinds are declared from most to least specific.
const (
	// RuleLocalNameExact compares the whole local name.
	RuleLocalNameExact RuleKind = iota
	// RuleLocalNamePrefix compares the start of the local name.
	RuleLocalNamePrefix
	// RuleServiceData checks for a service data key.
	RuleServiceData
	// RuleServiceUUID checks the advertised service list.
	RuleServiceUUID
	// RuleCustom calls a caller-supplied predicate.
	RuleCustom
)

// String returns the rule kind name.
func (k RuleKind) String() string {
	switch k {
	case RuleLocalNameExact:
		return "local-name"
	case RuleLocalNamePrefix:
		return "local-name-prefix"
	case RuleServiceData:
		return "service-data"
	case RuleServiceUUID:
		return "service-uuid"
	case RuleCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Rule is a predicate over an advertisement.
type Rule struct {
	Kind RuleKind

	// UUID is used by RuleServiceData and RuleServiceUUID.
	UUID uuid.UUID

	// Name is used by RuleLocalNameExact and RuleLocalNamePrefix.
	Name string

	// Func is used by RuleCustom.
	Func func(Advertisement) bool
}

// ServiceUUIDMatch matches advertisements that list id as a service UUID.
func ServiceUUIDMatch(id uuid.UUID) Rule {
	return Rule{Kind: RuleServiceUUID, UUID: id}
}

// LocalNameMatch matches advertisements whose local name equals name.
func LocalNameMatch(name string) Rule {
	return Rule{Kind: RuleLocalNameExact, Name: name}
}

// LocalNamePrefix matches advertisements whose local name starts with prefix.
func LocalNamePrefix(prefix string) Rule {
	return Rule{Kind: RuleLocalNamePrefix, Name: prefix}
}

// ServiceDataPresence matches advertisements carrying service data for id,
// regardless of the payload.
func ServiceDataPresence(id uuid.UUID) Rule {
	return Rule{Kind: RuleServiceData, UUID: id}
}

// CustomRule matches advertisements for which fn returns true.
func CustomRule(fn func(Advertisement) bool) Rule {
	return Rule{Kind: RuleCustom, Func: fn}
}

// Matches reports whether adv satisfies the rule.
func (r Rule) Matches(adv Advertisement) bool {
	switch r.Kind {
	case RuleServiceUUID:
		return adv.HasServiceUUID(r.UUID)
	case RuleLocalNameExact:
		return adv.LocalName != "" && adv.LocalName == r.Name
	case RuleLocalNamePrefix:
		return adv.LocalName != "" && strings.HasPrefix(adv.LocalName, r.Name)
	case RuleServiceData:
		return adv.HasServiceData(r.UUID)
	case RuleCustom:
		return r.Func != nil && r.Func(adv)
	default:
		return false
	}
}

// Tier returns the rule's precedence when several families match.
// Lower tiers are more specific.
func (r Rule) Tier() int {
	return int(r.Kind)
}
