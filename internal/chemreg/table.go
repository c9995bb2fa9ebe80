package chemreg

import "fmt"

// SimpleElements returns the seed data for a small table of common elements.
func SimpleElements() []ElementData {
	return []ElementData{
		{Symbol: "H", AtomicWeight: 1},
		{Symbol: "He", AtomicWeight: 4},
		{Symbol: "C", AtomicWeight: 12},
		{Symbol: "N", AtomicWeight: 14},
		{Symbol: "O", AtomicWeight: 16},
		{Symbol: "Na", AtomicWeight: 23},
		{Symbol: "Mg", AtomicWeight: 24},
		{Symbol: "Al", AtomicWeight: 27},
		{Symbol: "P", AtomicWeight: 31},
		{Symbol: "S", AtomicWeight: 32},
		{Symbol: "Cl", AtomicWeight: 35.5},
		{Symbol: "K", AtomicWeight: 39},
		{Symbol: "Ca", AtomicWeight: 40},
		{Symbol: "Fe", AtomicWeight: 56},
		{Symbol: "Cu", AtomicWeight: 64},
		{Symbol: "Zn", AtomicWeight: 65},
		{Symbol: "Ag", AtomicWeight: 108},
		{Symbol: "Ba", AtomicWeight: 137},
		{Symbol: "Au", AtomicWeight: 197},
		{Symbol: "Hg", AtomicWeight: 201},
	}
}

// simpleValence pairs an element symbol with an oxidation state for the seed
// valence table.
type simpleValence struct {
	symbol  string
	valence int
}

func simpleValenceTable() []simpleValence {
	return []simpleValence{
		// Zero-valence elements
		{"H", 0}, {"He", 0}, {"C", 0}, {"N", 0}, {"O", 0},
		{"Mg", 0}, {"Al", 0}, {"P", 0}, {"S", 0}, {"Cl", 0},
		{"Fe", 0}, {"Cu", 0}, {"Zn", 0}, {"Ag", 0}, {"Ba", 0},
		{"Au", 0}, {"Hg", 0},
		// Valence elements
		{"H", +1},
		{"C", +2}, {"C", +4}, {"C", -4},
		{"N", -3}, {"N", +5},
		{"O", -2},
		{"Na", +1},
		{"Mg", +2},
		{"Al", +3},
		{"P", +5},
		{"S", +4}, {"S", +6},
		{"Cl", -1},
		{"K", +1},
		{"Ca", +2},
		{"Fe", +2}, {"Fe", +3},
		{"Cu", +1}, {"Cu", +2},
		{"Zn", +2},
		{"Ag", +1},
		{"Ba", +2},
		{"Hg", +2},
	}
}

// SimpleValenceElements returns the seed valence-element data, with element
// references resolved against the given registry. The registry must already
// contain the SimpleElements seed.
func SimpleValenceElements(elements *ElementRegistry) ([]ValenceElementData, error) {
	table := simpleValenceTable()
	out := make([]ValenceElementData, 0, len(table))
	for _, entry := range table {
		el, err := elements.BySymbol(entry.symbol)
		if err != nil {
			return nil, fmt.Errorf("valence table entry %s(%+d): %w", entry.symbol, entry.valence, err)
		}
		out = append(out, ValenceElementData{Element: el, Valence: entry.valence})
	}
	return out, nil
}

// LoadSimpleElements loads the simple element and valence-element tables into
// the set, replacing any previous contents of the element and valence
// registries.
func LoadSimpleElements(set *Set) error {
	if err := set.Elements.Load(SimpleElements()); err != nil {
		return fmt.Errorf("loading elements: %w", err)
	}
	data, err := SimpleValenceElements(set.Elements)
	if err != nil {
		return err
	}
	if err := set.ValenceElements.Load(data); err != nil {
		return fmt.Errorf("loading valence elements: %w", err)
	}
	set.logger.Infof("simple table loaded: %d elements, %d valence elements",
		set.Elements.Len(), set.ValenceElements.Len())
	return nil
}
