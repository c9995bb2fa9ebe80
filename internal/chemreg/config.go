package chemreg

// ElementConfig describes one element of a table config.
type ElementConfig struct {
	Symbol       string  `json:"symbol,omitempty"`
	AtomicWeight float64 `json:"atomic_weight,omitempty"`
}

// ValenceElementConfig describes one valence element, referencing its base
// element by symbol.
type ValenceElementConfig struct {
	Element string `json:"element"`
	Valence int    `json:"valence"`
	Symbol  string `json:"symbol,omitempty"`
}

// EffectiveSymbol returns the display symbol the entry will register under:
// the override if present, else the derived "Sym(+v)" form.
func (c ValenceElementConfig) EffectiveSymbol() string {
	if c.Symbol != "" {
		return c.Symbol
	}
	return formatValenceSymbol(c.Element, c.Valence)
}

// PartConfig is one (component, multiplicity) pair of a group config.
// Kind selects the component registry; Symbol references a registered
// entity's display symbol.
type PartConfig struct {
	Kind   string `json:"kind"`
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
}

// GroupConfig describes one atomic group. Valence and NoValence mirror the
// three-way valence override: absent means "compute from composition".
type GroupConfig struct {
	Elements      []PartConfig `json:"elements"`
	Valence       *int         `json:"valence,omitempty"`
	NoValence     bool         `json:"no_valence,omitempty"`
	BaseSymbol    string       `json:"base_symbol,omitempty"`
	Symbol        string       `json:"symbol,omitempty"`
	SymbolOnlyKey bool         `json:"symbol_only_key,omitempty"`
}

// ValenceSpec converts the config fields into the three-way override value.
func (c GroupConfig) ValenceSpec() ValenceSpec {
	if c.NoValence {
		return NoValence()
	}
	if c.Valence != nil {
		return FixedValence(*c.Valence)
	}
	return DeriveValence()
}

// TableConfig is the JSON description of a whole table: elements, valence
// elements and optional named groups, in load order.
type TableConfig struct {
	Name            string                 `json:"name"`
	Elements        []ElementConfig        `json:"elements"`
	ValenceElements []ValenceElementConfig `json:"valence_elements,omitempty"`
	Groups          []GroupConfig          `json:"groups,omitempty"`
}
