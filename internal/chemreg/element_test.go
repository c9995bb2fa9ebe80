package chemreg

import (
	"errors"
	"testing"
)

func TestElement_Symbol(t *testing.T) {
	tests := []struct {
		name     string
		data     ElementData
		validate func(t *testing.T, e *Element)
	}{
		{
			name: "explicit symbol",
			data: ElementData{Symbol: "H", AtomicWeight: 1},
			validate: func(t *testing.T, e *Element) {
				if e.Symbol() != "H" {
					t.Errorf("Expected symbol 'H', got '%s'", e.Symbol())
				}
				if e.AtomicWeight() != 1 {
					t.Errorf("Expected atomic weight 1, got %f", e.AtomicWeight())
				}
			},
		},
		{
			name: "anonymous element gets placeholder",
			data: ElementData{},
			validate: func(t *testing.T, e *Element) {
				if e.Symbol() != "<Element#0>" {
					t.Errorf("Expected placeholder '<Element#0>', got '%s'", e.Symbol())
				}
			},
		},
		{
			name: "weight without symbol",
			data: ElementData{AtomicWeight: 12},
			validate: func(t *testing.T, e *Element) {
				if e.Symbol() != "<Element#0>" {
					t.Errorf("Expected placeholder symbol, got '%s'", e.Symbol())
				}
				if e.AtomicWeight() != 12 {
					t.Errorf("Expected atomic weight 12, got %f", e.AtomicWeight())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewElementRegistry()
			e, err := reg.Create(tt.data)
			if err != nil {
				t.Fatalf("Create returned error: %v", err)
			}
			tt.validate(t, e)
		})
	}
}

func TestElement_AnonymousNeverCollide(t *testing.T) {
	reg := NewElementRegistry()

	first, err := reg.Create(ElementData{})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := reg.Create(ElementData{})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if first.Symbol() == second.Symbol() {
		t.Errorf("Anonymous elements share symbol '%s'", first.Symbol())
	}
	if second.Symbol() != "<Element#1>" {
		t.Errorf("Expected '<Element#1>', got '%s'", second.Symbol())
	}
}

func TestElement_ExplicitSymbolsCollide(t *testing.T) {
	reg := NewElementRegistry()

	if _, err := reg.Create(ElementData{Symbol: "O", AtomicWeight: 16}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	_, err := reg.Create(ElementData{Symbol: "O", AtomicWeight: 18})
	if !errors.Is(err, ErrKeyConflict) {
		t.Errorf("Expected ErrKeyConflict, got %v", err)
	}
}

func TestElement_IdentityStability(t *testing.T) {
	reg := NewElementRegistry()
	created, _ := reg.Create(ElementData{Symbol: "Fe", AtomicWeight: 56})

	byIndex, err := reg.ByIndex(created.Index())
	if err != nil {
		t.Fatalf("ByIndex returned error: %v", err)
	}
	if byIndex != created {
		t.Error("ByIndex returned a different entity")
	}
	if byIndex.Symbol() != created.Symbol() || byIndex.Data() != created.Data() {
		t.Error("Entity attributes changed between creation and lookup")
	}
}

func TestElement_String(t *testing.T) {
	reg := NewElementRegistry()
	e, _ := reg.Create(ElementData{Symbol: "Hg", AtomicWeight: 201})

	if e.String() != "Hg" {
		t.Errorf("Expected 'Hg', got '%s'", e.String())
	}
}
