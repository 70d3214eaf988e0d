package cachekit

import "time"

// PolicyKind selects which TTL resolution algorithm a Policy uses.
type PolicyKind int

const (
	// PolicyNone means writes carry no expiry unless overridden per-op.
	PolicyNone PolicyKind = iota
	// PolicyFixed resolves every prefix to the same duration.
	PolicyFixed
	// PolicyPerPrefix resolves a duration per entity prefix; a prefix
	// absent from the map resolves to no expiry.
	PolicyPerPrefix
)

// Policy resolves the effective TTL for a write. Resolution order for a
// single operation:
//
//  1. the operation's TTLOverride, if set
//  2. PerPrefix[prefix], if Kind is PolicyPerPrefix and prefix is present
//  3. Fixed, if Kind is PolicyFixed
//  4. no expiry
type Policy struct {
	Kind      PolicyKind
	Fixed     time.Duration
	PerPrefix map[string]time.Duration
}

// NewFixedPolicy returns a Policy that resolves every prefix to d.
func NewFixedPolicy(d time.Duration) Policy {
	return Policy{Kind: PolicyFixed, Fixed: d}
}

// NewPerPrefixPolicy returns a Policy keyed by entity prefix. A prefix
// absent from m resolves to no expiry; PerPrefix and Fixed are distinct
// policy kinds, not a fallback chain.
func NewPerPrefixPolicy(m map[string]time.Duration) Policy {
	return Policy{Kind: PolicyPerPrefix, PerPrefix: m}
}

// NewNoExpiryPolicy returns a Policy that never assigns a TTL absent a
// per-operation override.
func NewNoExpiryPolicy() Policy {
	return Policy{Kind: PolicyNone}
}

// Resolve computes the effective TTL for prefix under override. A nil
// return means "no expiry".
func (p Policy) Resolve(prefix string, override *time.Duration) *time.Duration {
	if override != nil {
		return override
	}
	switch p.Kind {
	case PolicyPerPrefix:
		if d, ok := p.PerPrefix[prefix]; ok {
			return &d
		}
		return nil
	case PolicyFixed:
		d := p.Fixed
		return &d
	default:
		return nil
	}
}
