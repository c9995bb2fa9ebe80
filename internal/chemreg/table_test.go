package chemreg

import (
	"errors"
	"testing"
)

func TestLoadSimpleElements(t *testing.T) {
	set := NewSet()
	if err := LoadSimpleElements(set); err != nil {
		t.Fatalf("LoadSimpleElements returned error: %v", err)
	}

	if set.Elements.Len() != 20 {
		t.Errorf("Expected 20 elements, got %d", set.Elements.Len())
	}
	if set.ValenceElements.Len() != 41 {
		t.Errorf("Expected 41 valence elements, got %d", set.ValenceElements.Len())
	}

	// Spot-check a few entries
	h, err := set.Elements.BySymbol("H")
	if err != nil {
		t.Fatalf("BySymbol('H') returned error: %v", err)
	}
	if h.Index() != 0 {
		t.Errorf("Expected 'H' at index 0, got %d", h.Index())
	}
	if h.AtomicWeight() != 1 {
		t.Errorf("Expected atomic weight 1, got %f", h.AtomicWeight())
	}

	cl, err := set.Elements.BySymbol("Cl")
	if err != nil {
		t.Fatalf("BySymbol('Cl') returned error: %v", err)
	}
	if cl.AtomicWeight() != 35.5 {
		t.Errorf("Expected atomic weight 35.5, got %f", cl.AtomicWeight())
	}

	fe2, err := set.ValenceElements.BySymbol("Fe(+2)")
	if err != nil {
		t.Fatalf("BySymbol('Fe(+2)') returned error: %v", err)
	}
	if fe2.Valence() != 2 {
		t.Errorf("Expected valence 2, got %d", fe2.Valence())
	}
	if fe2.Element().Symbol() != "Fe" {
		t.Errorf("Expected base element 'Fe', got '%s'", fe2.Element().Symbol())
	}

	o, _ := set.Elements.BySymbol("O")
	om2, err := set.ValenceElements.ByComposition(o, -2)
	if err != nil {
		t.Fatalf("ByComposition(O, -2) returned error: %v", err)
	}
	if om2.Symbol() != "O(-2)" {
		t.Errorf("Expected symbol 'O(-2)', got '%s'", om2.Symbol())
	}
}

func TestLoadSimpleElements_ReplacesPreviousContents(t *testing.T) {
	set := NewSet()
	if _, err := set.Elements.Create(ElementData{Symbol: "Xx"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := LoadSimpleElements(set); err != nil {
		t.Fatalf("LoadSimpleElements returned error: %v", err)
	}

	if _, err := set.Elements.BySymbol("Xx"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Expected previous contents discarded, got %v", err)
	}
	if set.Elements.Len() != 20 {
		t.Errorf("Expected 20 elements, got %d", set.Elements.Len())
	}
}

func TestLoadSimpleElements_Reload(t *testing.T) {
	set := NewSet()
	if err := LoadSimpleElements(set); err != nil {
		t.Fatalf("first load returned error: %v", err)
	}
	// Loading again must not conflict: load clears first
	if err := LoadSimpleElements(set); err != nil {
		t.Fatalf("second load returned error: %v", err)
	}
	if set.Elements.Len() != 20 || set.ValenceElements.Len() != 41 {
		t.Errorf("Unexpected counts after reload: %d elements, %d valence elements",
			set.Elements.Len(), set.ValenceElements.Len())
	}
}

func TestSimpleValenceElements_MissingElement(t *testing.T) {
	// Valence table references elements that are not loaded yet
	_, err := SimpleValenceElements(NewElementRegistry())
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Expected ErrUnknownKey, got %v", err)
	}
}

func TestSet_Clear(t *testing.T) {
	set := NewSet()
	if err := LoadSimpleElements(set); err != nil {
		t.Fatalf("LoadSimpleElements returned error: %v", err)
	}
	c4, _ := set.ValenceElements.BySymbol("C(+4)")
	o2, _ := set.ValenceElements.BySymbol("O(-2)")
	if _, err := set.Groups.Create(AtomicGroupData{Elements: []Part{{c4, 1}, {o2, 3}}}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	set.Clear()

	if set.Len() != 0 {
		t.Errorf("Expected empty set, got %d entities", set.Len())
	}
	if set.Elements.Len() != 0 || set.ValenceElements.Len() != 0 || set.Groups.Len() != 0 {
		t.Error("Expected all three registries cleared together")
	}
}
