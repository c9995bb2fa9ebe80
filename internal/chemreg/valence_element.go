package chemreg

import "fmt"

// ValenceElementData is the creation payload for a ValenceElement: a
// previously registered base element paired with an oxidation state.
// Symbol optionally overrides the derived display symbol.
type ValenceElementData struct {
	Element *Element
	Valence int
	Symbol  string
}

// ValenceKey is the structural registry key of a ValenceElement: the
// (base element, valence) pair. No two valence elements may represent the
// same element at the same oxidation state.
type ValenceKey struct {
	Element *Element
	Valence int
}

// ValenceElement is an element with a specific oxidation state. It is
// registered under two keys: its display symbol and its ValenceKey, so it
// can be looked up by textual form or by semantic composition.
type ValenceElement struct {
	index  int
	data   ValenceElementData
	symbol string
}

func resolveValenceElement(index int, data ValenceElementData) (*ValenceElement, error) {
	if data.Element == nil {
		return nil, fmt.Errorf("%w: valence element requires a base element", ErrMissingIdentifier)
	}
	v := &ValenceElement{index: index, data: data}
	v.symbol = data.Symbol
	if v.symbol == "" {
		v.symbol = formatValenceSymbol(data.Element.Symbol(), data.Valence)
	}
	return v, nil
}

// formatValenceSymbol renders the default valence decoration with an
// explicit sign, e.g. "Fe(+2)", "O(-2)", "H(+0)".
func formatValenceSymbol(base string, valence int) string {
	return fmt.Sprintf("%s(%+d)", base, valence)
}

// Index returns the valence element's position in its registry.
func (v *ValenceElement) Index() int { return v.index }

// Symbol returns the display symbol, e.g. "Fe(+2)".
func (v *ValenceElement) Symbol() string { return v.symbol }

// BaseSymbol returns the valence-free form: the base element's symbol.
func (v *ValenceElement) BaseSymbol() string { return v.data.Element.Symbol() }

// Element returns the base element.
func (v *ValenceElement) Element() *Element { return v.data.Element }

// Valence returns the oxidation state.
func (v *ValenceElement) Valence() int { return v.data.Valence }

// Data returns the immutable creation payload.
func (v *ValenceElement) Data() ValenceElementData { return v.data }

// Keys returns the registry keys: the display symbol and the structural
// (element, valence) pair.
func (v *ValenceElement) Keys() []Key {
	return []Key{v.symbol, ValenceKey{Element: v.data.Element, Valence: v.data.Valence}}
}

func (v *ValenceElement) String() string { return v.symbol }

func (v *ValenceElement) isComponent() {}
