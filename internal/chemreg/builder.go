package chemreg

import "fmt"

// BuildSetFromConfig builds a fresh, fully populated Set from a table config.
// The config should be validated with ValidateTableConfig first; build errors
// surface anything validation deliberately leaves to resolution time.
func BuildSetFromConfig(cfg TableConfig) (*Set, error) {
	set := NewSet()
	if err := ApplyTableConfig(set, cfg); err != nil {
		return nil, err
	}
	return set, nil
}

// ApplyTableConfig replaces the set's contents with the config: elements,
// then valence elements, then groups, each in declared order so that later
// entries may reference earlier ones.
func ApplyTableConfig(set *Set, cfg TableConfig) error {
	set.Clear()

	elements := make([]ElementData, 0, len(cfg.Elements))
	for _, el := range cfg.Elements {
		elements = append(elements, ElementData{Symbol: el.Symbol, AtomicWeight: el.AtomicWeight})
	}
	if err := set.Elements.Extend(elements); err != nil {
		return fmt.Errorf("building elements: %w", err)
	}

	for i, ve := range cfg.ValenceElements {
		base, err := set.Elements.BySymbol(ve.Element)
		if err != nil {
			return fmt.Errorf("building valence element %d: %w", i, err)
		}
		data := ValenceElementData{Element: base, Valence: ve.Valence, Symbol: ve.Symbol}
		if _, err := set.ValenceElements.Create(data); err != nil {
			return fmt.Errorf("building valence element %d: %w", i, err)
		}
	}

	for i, g := range cfg.Groups {
		data, err := GroupDataFromConfig(set, g)
		if err != nil {
			return fmt.Errorf("building group %d: %w", i, err)
		}
		if _, err := set.Groups.Create(data); err != nil {
			return fmt.Errorf("building group %d: %w", i, err)
		}
	}

	set.logger.Infof("table %q built: %d elements, %d valence elements, %d groups",
		cfg.Name, set.Elements.Len(), set.ValenceElements.Len(), set.Groups.Len())
	return nil
}

// GroupDataFromConfig resolves a group config's component references against
// the set's registries and returns the creation payload.
func GroupDataFromConfig(set *Set, cfg GroupConfig) (AtomicGroupData, error) {
	parts := make([]Part, 0, len(cfg.Elements))
	for i, p := range cfg.Elements {
		component, err := resolvePartComponent(set, p)
		if err != nil {
			return AtomicGroupData{}, fmt.Errorf("part %d: %w", i, err)
		}
		parts = append(parts, Part{Component: component, Count: p.Count})
	}
	return AtomicGroupData{
		Elements:      parts,
		Valence:       cfg.ValenceSpec(),
		BaseSymbol:    cfg.BaseSymbol,
		Symbol:        cfg.Symbol,
		SymbolOnlyKey: cfg.SymbolOnlyKey,
	}, nil
}

func resolvePartComponent(set *Set, p PartConfig) (Component, error) {
	switch p.Kind {
	case string(KindElement):
		return set.Elements.BySymbol(p.Symbol)
	case string(KindValenceElement):
		return set.ValenceElements.BySymbol(p.Symbol)
	case string(KindAtomicGroup):
		return set.Groups.BySymbol(p.Symbol)
	default:
		return nil, fmt.Errorf("%w: unknown component kind %q", ErrInvalidComposition, p.Kind)
	}
}
