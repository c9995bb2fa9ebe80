package chemreg

import (
	"fmt"
	"strconv"
	"strings"
)

// Component is the closed sum of entity kinds that may appear in an atomic
// group composition: *Element, *ValenceElement or *AtomicGroup. Components
// must already be registered (and therefore fully resolved) when the group
// is created, which structurally rules out cycles.
type Component interface {
	Symbol() string
	isComponent()
}

// Part is one (component, multiplicity) pair of a composition.
type Part struct {
	Component Component
	Count     int
}

type valenceMode uint8

const (
	valenceDerive valenceMode = iota
	valenceFixed
	valenceNone
)

// ValenceSpec selects how a group's valence is determined: computed from the
// composition (the zero value), fixed to an explicit override, or explicitly
// indeterminate.
type ValenceSpec struct {
	mode  valenceMode
	value int
}

// DeriveValence computes the valence from the composition. Zero value of
// ValenceSpec.
func DeriveValence() ValenceSpec { return ValenceSpec{} }

// FixedValence overrides the computed valence with v.
func FixedValence(v int) ValenceSpec { return ValenceSpec{mode: valenceFixed, value: v} }

// NoValence forces the valence to indeterminate regardless of composition.
func NoValence() ValenceSpec { return ValenceSpec{mode: valenceNone} }

// Fixed reports the override value, if any.
func (s ValenceSpec) Fixed() (int, bool) { return s.value, s.mode == valenceFixed }

// IsNone reports whether the valence is explicitly indeterminate.
func (s ValenceSpec) IsNone() bool { return s.mode == valenceNone }

// AtomicGroupData is the creation payload for an AtomicGroup.
//
// Elements is the ordered composition. Valence, BaseSymbol and Symbol
// optionally override the corresponding derivations. SymbolOnlyKey restricts
// the registry keys to the display symbol alone; by default a fingerprint of
// the raw composition is registered as a second, independent key, so a
// duplicate composition collides even under a symbol override.
type AtomicGroupData struct {
	Elements      []Part
	Valence       ValenceSpec
	BaseSymbol    string
	Symbol        string
	SymbolOnlyKey bool
}

// GroupKey is the structural registry key of an AtomicGroup: a canonical
// fingerprint of the composition.
type GroupKey struct {
	Composition string
}

// AtomicGroup is a composite entity. Valence, base symbol and display symbol
// are folded from the composition once, at creation.
type AtomicGroup struct {
	index      int
	data       AtomicGroupData
	valence    int
	hasValence bool
	baseSymbol string
	symbol     string
}

func resolveAtomicGroup(index int, data AtomicGroupData) (*AtomicGroup, error) {
	if err := validateComposition(data.Elements); err != nil {
		return nil, err
	}

	g := &AtomicGroup{index: index, data: data}
	g.valence, g.hasValence = deriveGroupValence(data)
	g.baseSymbol = deriveGroupBaseSymbol(data)
	g.symbol = g.deriveSymbol()
	return g, nil
}

// validateComposition rejects malformed pairs before any derivation runs, so
// failures abort creation with no partial state.
func validateComposition(parts []Part) error {
	for i, p := range parts {
		if p.Component == nil {
			return fmt.Errorf("%w: nil component at position %d", ErrInvalidComposition, i)
		}
		switch p.Component.(type) {
		case *Element, *ValenceElement, *AtomicGroup:
		default:
			return fmt.Errorf("%w: unsupported component type %T at position %d", ErrInvalidComposition, p.Component, i)
		}
		if p.Count <= 0 {
			return fmt.Errorf("%w: multiplicity %d at position %d", ErrInvalidComposition, p.Count, i)
		}
	}
	return nil
}

// deriveGroupValence folds the composition into a single valence.
// A bare element or a nested indeterminate group makes the whole group
// indeterminate.
func deriveGroupValence(data AtomicGroupData) (int, bool) {
	if data.Valence.IsNone() {
		return 0, false
	}
	if v, ok := data.Valence.Fixed(); ok {
		return v, true
	}

	total := 0
	for _, p := range data.Elements {
		switch c := p.Component.(type) {
		case *Element:
			// No assigned oxidation state: indeterminate, overriding any
			// partial accumulation.
			return 0, false
		case *ValenceElement:
			total += c.Valence() * p.Count
		case *AtomicGroup:
			v, ok := c.Valence()
			if !ok {
				return 0, false
			}
			total += v * p.Count
		}
	}
	return total, true
}

// deriveGroupBaseSymbol concatenates each component's short form, with the
// multiplicity appended as decimal digits when greater than one.
func deriveGroupBaseSymbol(data AtomicGroupData) string {
	if data.BaseSymbol != "" {
		return data.BaseSymbol
	}

	var b strings.Builder
	for _, p := range data.Elements {
		switch c := p.Component.(type) {
		case *Element:
			b.WriteString(c.Symbol())
		case *ValenceElement:
			b.WriteString(c.BaseSymbol())
		case *AtomicGroup:
			b.WriteString(c.BaseSymbol())
		}
		if p.Count > 1 {
			b.WriteString(strconv.Itoa(p.Count))
		}
	}
	return b.String()
}

// deriveSymbol decorates the base symbol with the leading substituent marker
// and, when resolved, the signed valence.
func (g *AtomicGroup) deriveSymbol() string {
	if g.data.Symbol != "" {
		return g.data.Symbol
	}
	if !g.hasValence {
		return "-" + g.baseSymbol
	}
	return fmt.Sprintf("-%s(%+d)", g.baseSymbol, g.valence)
}

// compositionFingerprint renders a composition as a canonical string over the
// components' kinds and indexes. Interning makes it injective: equal
// fingerprints mean the same components at the same multiplicities.
func compositionFingerprint(parts []Part) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(';')
		}
		switch c := p.Component.(type) {
		case *Element:
			b.WriteByte('E')
			b.WriteString(strconv.Itoa(c.Index()))
		case *ValenceElement:
			b.WriteByte('V')
			b.WriteString(strconv.Itoa(c.Index()))
		case *AtomicGroup:
			b.WriteByte('G')
			b.WriteString(strconv.Itoa(c.Index()))
		}
		b.WriteByte('x')
		b.WriteString(strconv.Itoa(p.Count))
	}
	return b.String()
}

// Index returns the group's position in its registry.
func (g *AtomicGroup) Index() int { return g.index }

// Symbol returns the display symbol, e.g. "-CO3(-2)".
func (g *AtomicGroup) Symbol() string { return g.symbol }

// BaseSymbol returns the valence-free form, e.g. "CO3".
func (g *AtomicGroup) BaseSymbol() string { return g.baseSymbol }

// Valence returns the group's total valence. ok is false when the valence is
// indeterminate.
func (g *AtomicGroup) Valence() (v int, ok bool) { return g.valence, g.hasValence }

// Parts returns a copy of the ordered composition.
func (g *AtomicGroup) Parts() []Part {
	out := make([]Part, len(g.data.Elements))
	copy(out, g.data.Elements)
	return out
}

// Data returns the immutable creation payload.
func (g *AtomicGroup) Data() AtomicGroupData { return g.data }

// Keys returns the registry keys: the display symbol and, unless
// SymbolOnlyKey is set, the structural composition fingerprint. Each key is
// checked for conflicts independently, so a colliding symbol rejects the
// group regardless of its composition.
func (g *AtomicGroup) Keys() []Key {
	if g.data.SymbolOnlyKey {
		return []Key{g.symbol}
	}
	return []Key{g.symbol, GroupKey{Composition: compositionFingerprint(g.data.Elements)}}
}

func (g *AtomicGroup) String() string { return g.symbol }

func (g *AtomicGroup) isComponent() {}
