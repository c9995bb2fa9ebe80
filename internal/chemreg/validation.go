package chemreg

import (
	"fmt"
	"strings"
)

// ValidationError collects multiple validation issues
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid table: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0]
	}
	return "table validation errors: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Add(issue string) {
	e.Issues = append(e.Issues, issue)
}

func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// Valid component kinds for PartConfig.Kind
var validPartKinds = map[string]bool{
	string(KindElement):        true,
	string(KindValenceElement): true,
	string(KindAtomicGroup):    true,
}

// ValidateTableConfig performs comprehensive validation of a TableConfig:
// required name, duplicate element symbols, valence entries referencing
// unknown elements or duplicating an (element, valence) pair, and malformed
// group compositions.
//
// Group parts of kind "atomic_group" can reference groups whose symbols are
// only known after derivation, so they are resolved at build time rather
// than here.
func ValidateTableConfig(cfg TableConfig) error {
	err := &ValidationError{}

	if cfg.Name == "" {
		err.Add("table name is required")
	}

	// Element symbols. Anonymous entries never collide: the table is applied
	// to a cleared set, so entry i registers under the placeholder for
	// index i, and references may use that placeholder.
	elementSymbols := make(map[string]bool)
	for i, el := range cfg.Elements {
		if el.Symbol == "" {
			elementSymbols[fmt.Sprintf("<Element#%d>", i)] = true
			continue
		}
		if elementSymbols[el.Symbol] {
			err.Add("duplicate element symbol: " + el.Symbol)
		} else {
			elementSymbols[el.Symbol] = true
		}
	}

	// Valence elements: element must exist, (element, valence) and effective
	// symbol must be unique.
	valencePairs := make(map[string]bool)
	valenceSymbols := make(map[string]bool)
	for i, ve := range cfg.ValenceElements {
		prefix := fmt.Sprintf("valence element at index %d", i)
		if ve.Element == "" {
			err.Add(prefix + ": element reference is required")
			continue
		}
		if !elementSymbols[ve.Element] {
			err.Add(prefix + ": element '" + ve.Element + "' does not exist")
		}
		pair := fmt.Sprintf("%s/%+d", ve.Element, ve.Valence)
		if valencePairs[pair] {
			err.Add(prefix + ": duplicate valence pair " + pair)
		} else {
			valencePairs[pair] = true
		}
		symbol := ve.EffectiveSymbol()
		if valenceSymbols[symbol] {
			err.Add(prefix + ": duplicate symbol " + symbol)
		} else {
			valenceSymbols[symbol] = true
		}
	}

	// Groups: composition shape and resolvable element/valence references.
	for i, g := range cfg.Groups {
		prefix := fmt.Sprintf("group at index %d", i)
		if g.Symbol != "" {
			prefix = "group '" + g.Symbol + "'"
		}
		if len(g.Elements) == 0 {
			err.Add(prefix + ": composition is required")
		}
		if g.Valence != nil && g.NoValence {
			err.Add(prefix + ": valence and no_valence are mutually exclusive")
		}
		for j, p := range g.Elements {
			partPrefix := prefix + fmt.Sprintf(" part at index %d", j)
			if !validPartKinds[p.Kind] {
				err.Add(partPrefix + ": invalid kind '" + p.Kind + "'")
			}
			if p.Symbol == "" {
				err.Add(partPrefix + ": component symbol is required")
			}
			if p.Count <= 0 {
				err.Add(partPrefix + fmt.Sprintf(": multiplicity must be positive, got %d", p.Count))
			}
			switch p.Kind {
			case string(KindElement):
				if p.Symbol != "" && !elementSymbols[p.Symbol] {
					err.Add(partPrefix + ": element '" + p.Symbol + "' does not exist")
				}
			case string(KindValenceElement):
				if p.Symbol != "" && !valenceSymbols[p.Symbol] {
					err.Add(partPrefix + ": valence element '" + p.Symbol + "' does not exist")
				}
			}
		}
	}

	if err.HasIssues() {
		return err
	}
	return nil
}
