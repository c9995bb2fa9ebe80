package chemreg

import (
	"errors"
	"testing"
)

// newTestSet seeds elements and the valence elements used across the group
// tests: C(+4), C(-4), O(-2), H(+1).
func newTestSet(t *testing.T) *Set {
	t.Helper()
	set := newTestElements(t)

	c, _ := set.Elements.BySymbol("C")
	o, _ := set.Elements.BySymbol("O")
	h, _ := set.Elements.BySymbol("H")
	data := []ValenceElementData{
		{Element: c, Valence: 4},
		{Element: c, Valence: -4},
		{Element: o, Valence: -2},
		{Element: h, Valence: 1},
	}
	if err := set.ValenceElements.Extend(data); err != nil {
		t.Fatalf("seeding valence elements: %v", err)
	}
	return set
}

func mustValence(t *testing.T, set *Set, symbol string) *ValenceElement {
	t.Helper()
	ve, err := set.ValenceElements.BySymbol(symbol)
	if err != nil {
		t.Fatalf("valence element %s: %v", symbol, err)
	}
	return ve
}

func TestAtomicGroup_ValenceAdditivity(t *testing.T) {
	set := newTestSet(t)
	c4 := mustValence(t, set, "C(+4)")
	o2 := mustValence(t, set, "O(-2)")

	// [(C+4, 1), (O-2, 3)] -> 4 + (-2*3) = -2
	g, err := set.Groups.Create(AtomicGroupData{
		Elements: []Part{{c4, 1}, {o2, 3}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	v, ok := g.Valence()
	if !ok {
		t.Fatal("Expected resolved valence, got indeterminate")
	}
	if v != -2 {
		t.Errorf("Expected valence -2, got %d", v)
	}
}

func TestAtomicGroup_SymbolFormatting(t *testing.T) {
	set := newTestSet(t)
	c4 := mustValence(t, set, "C(+4)")
	o2 := mustValence(t, set, "O(-2)")

	g, err := set.Groups.Create(AtomicGroupData{
		Elements: []Part{{c4, 1}, {o2, 3}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if g.BaseSymbol() != "CO3" {
		t.Errorf("Expected base symbol 'CO3', got '%s'", g.BaseSymbol())
	}
	if g.Symbol() != "-CO3(-2)" {
		t.Errorf("Expected display symbol '-CO3(-2)', got '%s'", g.Symbol())
	}
}

func TestAtomicGroup_IndeterminateDisplaySymbol(t *testing.T) {
	set := newTestSet(t)
	c4 := mustValence(t, set, "C(+4)")
	o2 := mustValence(t, set, "O(-2)")

	g, err := set.Groups.Create(AtomicGroupData{
		Elements: []Part{{c4, 1}, {o2, 3}},
		Valence:  NoValence(),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, ok := g.Valence(); ok {
		t.Error("Expected indeterminate valence with NoValence override")
	}
	if g.Symbol() != "-CO3" {
		t.Errorf("Expected display symbol '-CO3', got '%s'", g.Symbol())
	}
}

func TestAtomicGroup_IndeterminatePropagation(t *testing.T) {
	set := newTestSet(t)
	c4 := mustValence(t, set, "C(+4)")
	bareO, _ := set.Elements.BySymbol("O")

	t.Run("bare element makes group indeterminate", func(t *testing.T) {
		g, err := set.Groups.Create(AtomicGroupData{
			Elements: []Part{{c4, 1}, {bareO, 3}},
		})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if _, ok := g.Valence(); ok {
			t.Error("Expected indeterminate valence with a bare element component")
		}
		if g.BaseSymbol() != "CO3" {
			t.Errorf("Expected base symbol 'CO3', got '%s'", g.BaseSymbol())
		}
	})

	t.Run("nested indeterminate group propagates", func(t *testing.T) {
		inner, err := set.Groups.Create(AtomicGroupData{
			Elements: []Part{{bareO, 1}},
			Symbol:   "-Ox",
		})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if _, ok := inner.Valence(); ok {
			t.Fatal("Expected inner group to be indeterminate")
		}

		outer, err := set.Groups.Create(AtomicGroupData{
			Elements: []Part{{c4, 1}, {inner, 2}},
		})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if _, ok := outer.Valence(); ok {
			t.Error("Expected outer group to inherit indeterminate valence")
		}
	})
}

func TestAtomicGroup_NestedValence(t *testing.T) {
	set := newTestSet(t)
	c4 := mustValence(t, set, "C(+4)")
	o2 := mustValence(t, set, "O(-2)")

	// carbonate-like inner group: valence -2
	inner, err := set.Groups.Create(AtomicGroupData{
		Elements: []Part{{c4, 1}, {o2, 3}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// outer group: [(C+4, 1), (inner, 2)] -> 4 + (-2*2) = 0
	outer, err := set.Groups.Create(AtomicGroupData{
		Elements: []Part{{c4, 1}, {inner, 2}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	v, ok := outer.Valence()
	if !ok {
		t.Fatal("Expected resolved valence")
	}
	if v != 0 {
		t.Errorf("Expected valence 0, got %d", v)
	}
	// Nested groups contribute their base symbol, not the decorated form
	if outer.BaseSymbol() != "CCO32" {
		t.Errorf("Expected base symbol 'CCO32', got '%s'", outer.BaseSymbol())
	}
}

func TestAtomicGroup_FixedValenceOverride(t *testing.T) {
	set := newTestSet(t)
	bareO, _ := set.Elements.BySymbol("O")

	// Fixed override bypasses the fold entirely, even over a bare element
	g, err := set.Groups.Create(AtomicGroupData{
		Elements: []Part{{bareO, 2}},
		Valence:  FixedValence(-1),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	v, ok := g.Valence()
	if !ok || v != -1 {
		t.Errorf("Expected fixed valence -1, got %d (ok=%v)", v, ok)
	}
	if g.Symbol() != "-O2(-1)" {
		t.Errorf("Expected display symbol '-O2(-1)', got '%s'", g.Symbol())
	}
}

func TestAtomicGroup_SymbolOverrides(t *testing.T) {
	set := newTestSet(t)
	cm4 := mustValence(t, set, "C(-4)")
	h1 := mustValence(t, set, "H(+1)")

	// methyl: explicit no-valence sentinel and fixed display symbol
	g, err := set.Groups.Create(AtomicGroupData{
		Elements: []Part{{cm4, 1}, {h1, 4}},
		Valence:  NoValence(),
		Symbol:   "-Me",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if g.Symbol() != "-Me" {
		t.Errorf("Expected display symbol '-Me', got '%s'", g.Symbol())
	}
	if g.BaseSymbol() != "CH4" {
		t.Errorf("Expected base symbol 'CH4', got '%s'", g.BaseSymbol())
	}

	// base symbol override feeds the derived display symbol
	g2, err := set.Groups.Create(AtomicGroupData{
		Elements:   []Part{{cm4, 1}, {h1, 3}},
		BaseSymbol: "Me",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if g2.BaseSymbol() != "Me" {
		t.Errorf("Expected base symbol 'Me', got '%s'", g2.BaseSymbol())
	}
	if g2.Symbol() != "-Me(-1)" {
		t.Errorf("Expected display symbol '-Me(-1)', got '%s'", g2.Symbol())
	}
}

func TestAtomicGroup_InvalidComposition(t *testing.T) {
	set := newTestSet(t)
	o2 := mustValence(t, set, "O(-2)")

	tests := []struct {
		name string
		data AtomicGroupData
	}{
		{name: "zero multiplicity", data: AtomicGroupData{Elements: []Part{{o2, 0}}}},
		{name: "negative multiplicity", data: AtomicGroupData{Elements: []Part{{o2, -3}}}},
		{name: "nil component", data: AtomicGroupData{Elements: []Part{{nil, 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := set.Groups.Len()
			_, err := set.Groups.Create(tt.data)
			if !errors.Is(err, ErrInvalidComposition) {
				t.Errorf("Expected ErrInvalidComposition, got %v", err)
			}
			if set.Groups.Len() != before {
				t.Errorf("Expected no registry mutation, length went %d -> %d", before, set.Groups.Len())
			}
		})
	}
}

func TestAtomicGroup_Keys(t *testing.T) {
	set := newTestSet(t)
	c4 := mustValence(t, set, "C(+4)")
	o2 := mustValence(t, set, "O(-2)")

	t.Run("symbol and composition keys by default", func(t *testing.T) {
		g, err := set.Groups.Create(AtomicGroupData{
			Elements: []Part{{c4, 1}, {o2, 3}},
		})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		keys := g.Keys()
		if len(keys) != 2 {
			t.Fatalf("Expected 2 keys, got %d", len(keys))
		}
		if keys[0] != Key(g.Symbol()) {
			t.Errorf("Expected first key '%s', got %v", g.Symbol(), keys[0])
		}
		gk, ok := keys[1].(GroupKey)
		if !ok {
			t.Fatalf("Expected GroupKey, got %T", keys[1])
		}

		got, err := set.Groups.ByKey(gk)
		if err != nil || got != g {
			t.Errorf("ByKey(GroupKey): got %v, err %v", got, err)
		}
		if got, err := set.Groups.BySymbol(g.Symbol()); err != nil || got != g {
			t.Errorf("BySymbol: got %v, err %v", got, err)
		}
	})

	t.Run("colliding symbol rejects despite different composition", func(t *testing.T) {
		// Same symbol as [(C,1),(O,3)] rendered via a base symbol override
		before := set.Groups.Len()
		_, err := set.Groups.Create(AtomicGroupData{
			Elements:   []Part{{o2, 1}},
			Valence:    FixedValence(-2),
			BaseSymbol: "CO3",
		})
		if !errors.Is(err, ErrKeyConflict) {
			t.Errorf("Expected ErrKeyConflict on symbol collision, got %v", err)
		}
		if set.Groups.Len() != before {
			t.Errorf("Expected no registry mutation, length went %d -> %d", before, set.Groups.Len())
		}
	})

	t.Run("symbol-only key collides", func(t *testing.T) {
		reg := NewGroupRegistry()
		if _, err := reg.Create(AtomicGroupData{
			Elements:      []Part{{c4, 1}, {o2, 3}},
			SymbolOnlyKey: true,
		}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		_, err := reg.Create(AtomicGroupData{
			Elements:      []Part{{o2, 1}},
			Valence:       FixedValence(-2),
			BaseSymbol:    "CO3",
			SymbolOnlyKey: true,
		})
		if !errors.Is(err, ErrKeyConflict) {
			t.Errorf("Expected ErrKeyConflict with symbol-only keys, got %v", err)
		}
	})
}

func TestAtomicGroup_DuplicateComposition(t *testing.T) {
	set := newTestSet(t)
	c4 := mustValence(t, set, "C(+4)")
	o2 := mustValence(t, set, "O(-2)")

	data := AtomicGroupData{Elements: []Part{{c4, 1}, {o2, 3}}}
	if _, err := set.Groups.Create(data); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	_, err := set.Groups.Create(data)
	if !errors.Is(err, ErrKeyConflict) {
		t.Errorf("Expected ErrKeyConflict on identical composition, got %v", err)
	}
}

func TestAtomicGroup_PartsAreCopied(t *testing.T) {
	set := newTestSet(t)
	c4 := mustValence(t, set, "C(+4)")

	g, err := set.Groups.Create(AtomicGroupData{Elements: []Part{{c4, 2}}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	parts := g.Parts()
	parts[0].Count = 99

	if g.Parts()[0].Count != 2 {
		t.Error("Mutating the returned parts slice changed the group")
	}
}
