package main

import (
	"fmt"
	"os"

	"github.com/daniacca/chemreg/internal/chemreg"
)

func main() {
	set := chemreg.NewSet()
	if err := chemreg.LoadSimpleElements(set); err != nil {
		fmt.Fprintf(os.Stderr, "error loading element table: %v\n", err)
		os.Exit(1)
	}

	c4, err := set.ValenceElements.BySymbol("C(+4)")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	o2, err := set.ValenceElements.BySymbol("O(-2)")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Carbonate-like group: valence derived from the composition
	if _, err := set.Groups.Create(chemreg.AtomicGroupData{
		Elements: []chemreg.Part{{Component: c4, Count: 1}, {Component: o2, Count: 3}},
	}); err != nil {
		fmt.Fprintf(os.Stderr, "error creating group: %v\n", err)
		os.Exit(1)
	}

	cm4, err := set.ValenceElements.BySymbol("C(-4)")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	h1, err := set.ValenceElements.BySymbol("H(+1)")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Methyl-like group: symbol override, no valence
	if _, err := set.Groups.Create(chemreg.AtomicGroupData{
		Elements: []chemreg.Part{{Component: cm4, Count: 1}, {Component: h1, Count: 4}},
		Valence:  chemreg.NoValence(),
		Symbol:   "-Me",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "error creating group: %v\n", err)
		os.Exit(1)
	}

	printSummary(set)
}

func printSummary(set *chemreg.Set) {
	fmt.Printf("Loaded %d elements, %d valence elements, %d groups\n",
		set.Elements.Len(), set.ValenceElements.Len(), set.Groups.Len())

	fmt.Println("Atomic groups:")
	for _, g := range set.Groups.All() {
		valence := "none"
		if v, ok := g.Valence(); ok {
			valence = fmt.Sprintf("%+d", v)
		}
		fmt.Printf("  [%d] %s (base=%s, valence=%s)\n", g.Index(), g.Symbol(), g.BaseSymbol(), valence)
	}

	fmt.Println("Base symbols:")
	for _, g := range set.Groups.All() {
		fmt.Printf("  %s\n", g.BaseSymbol())
	}
}
