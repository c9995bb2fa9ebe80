package client_test

import (
	"context"
	"fmt"

	"github.com/daniacca/chemreg/pkg/client"
)

func ExampleTableBuilder() {
	table := client.NewTable("simple").
		Element("H", 1).
		Element("C", 12).
		Element("O", 16).
		ValenceElement("H", 1).
		ValenceElement("C", 4).
		ValenceElement("O", -2).
		Group(client.NewGroup().
			ValenceElement("C(+4)", 1).
			ValenceElement("O(-2)", 3).
			Symbol("-Carbonate"))

	cfg := table.Build()
	fmt.Printf("Table: %s\n", cfg.Name)
	fmt.Printf("Elements: %d\n", len(cfg.Elements))
	fmt.Printf("Valence elements: %d\n", len(cfg.ValenceElements))
	fmt.Printf("Groups: %d\n", len(cfg.Groups))

	// Output:
	// Table: simple
	// Elements: 3
	// Valence elements: 3
	// Groups: 1
}

func ExampleApplyTable() {
	ctx := context.Background()
	table := client.NewTable("test").
		Element("H", 1)

	// This would send the table to the server
	// Uncomment to actually send:
	// err := client.ApplyTable(ctx, "http://localhost:8080", table)
	// if err != nil {
	// 	log.Fatal(err)
	// }

	_ = ctx
	_ = table
}

func ExampleGroupBuilder_NoValence() {
	group := client.NewGroup().
		ValenceElement("C(-4)", 1).
		ValenceElement("H(+1)", 4).
		NoValence().
		Symbol("-Me")

	cfg := group.Build()
	fmt.Printf("Symbol: %s\n", cfg.Symbol)
	fmt.Printf("NoValence: %v\n", cfg.NoValence)

	// Output:
	// Symbol: -Me
	// NoValence: true
}
