package chemreg

import "fmt"

// ElementData is the creation payload for an Element.
// Both fields are optional: an element without a symbol gets a synthetic
// placeholder derived from its registry index.
type ElementData struct {
	Symbol       string  `json:"symbol,omitempty"`
	AtomicWeight float64 `json:"atomic_weight,omitempty"`
}

// Element is a leaf entity wrapping a symbol and an optional atomic weight.
// Its only registry key is its symbol.
type Element struct {
	index  int
	data   ElementData
	symbol string
}

func resolveElement(index int, data ElementData) (*Element, error) {
	e := &Element{index: index, data: data}
	e.symbol = data.Symbol
	if e.symbol == "" {
		// Anonymous elements never collide: each placeholder embeds its own
		// index.
		e.symbol = fmt.Sprintf("<Element#%d>", index)
	}
	return e, nil
}

// Index returns the element's position in its registry.
func (e *Element) Index() int { return e.index }

// Symbol returns the display symbol.
func (e *Element) Symbol() string { return e.symbol }

// AtomicWeight returns the average atomic weight in g/mol, or 0 if unknown.
func (e *Element) AtomicWeight() float64 { return e.data.AtomicWeight }

// Data returns the immutable creation payload.
func (e *Element) Data() ElementData { return e.data }

// Keys returns the registry keys: just the symbol.
func (e *Element) Keys() []Key { return []Key{e.symbol} }

func (e *Element) String() string { return e.symbol }

func (e *Element) isComponent() {}
