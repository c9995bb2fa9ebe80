package chemreg

import (
	"fmt"
	"sync"
	"time"
)

// Key is a derived lookup key. Key values must be comparable: every entity
// kind derives plain strings and/or small comparable structs (ValenceKey,
// GroupKey).
type Key any

// Entity is the read side shared by all registered entity kinds.
// Entities are immutable after creation: index, symbol and keys are derived
// exactly once, inside the registry's critical section.
type Entity interface {
	// Index is the entity's position in creation order within its registry.
	Index() int
	// Symbol is the derived display symbol.
	Symbol() string
	// Keys returns the derived lookup keys. Each must be unique within the
	// registry.
	Keys() []Key
}

// ResolveFunc constructs a fully-derived entity from its assigned index and
// creation data. It is invoked under the registry's write lock, so it may
// read other, already-published registries but must not call back into its
// own.
type ResolveFunc[D any, E Entity] func(index int, data D) (E, error)

// EntityKind names a registry for event reporting.
type EntityKind string

const (
	KindElement        EntityKind = "element"
	KindValenceElement EntityKind = "valence_element"
	KindAtomicGroup    EntityKind = "atomic_group"
)

// Registry is an append-only interning store for one entity kind: a dense
// index-ordered slice plus a key map for secondary lookup.
//
// Create, Extend, Load and Clear are serialized by a write lock; index
// assignment, derivation, key-collision checks and publication all happen
// inside the critical section, so readers never observe a half-published
// entity. Lookups share a read lock.
type Registry[D any, E Entity] struct {
	mu      sync.RWMutex
	kind    EntityKind
	entries []E
	byKey   map[Key]int
	resolve ResolveFunc[D, E]
	hook    func(Event)
}

// NewRegistry creates an empty registry for one entity kind.
func NewRegistry[D any, E Entity](kind EntityKind, resolve ResolveFunc[D, E]) *Registry[D, E] {
	return &Registry[D, E]{
		kind:    kind,
		byKey:   make(map[Key]int),
		resolve: resolve,
	}
}

// Kind returns the entity kind stored by this registry.
func (r *Registry[D, E]) Kind() EntityKind {
	return r.kind
}

// SetEventHook installs a callback invoked after every successful Create and
// after every Clear, outside the registry's critical section. A nil hook
// disables event reporting.
func (r *Registry[D, E]) SetEventHook(hook func(Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hook = hook
}

// Create derives and publishes a new entity from data. The next free index is
// assigned, the kind's derivation routines run, and every derived key is
// checked against the key map. If any key is already taken the whole creation
// is aborted with ErrKeyConflict and nothing is published.
func (r *Registry[D, E]) Create(data D) (E, error) {
	r.mu.Lock()
	entity, err := r.createLocked(data)
	hook := r.hook
	r.mu.Unlock()

	if err != nil {
		return entity, err
	}
	if hook != nil {
		hook(newEvent(r.kind, OpCreate, entity.Index(), entity.Symbol()))
	}
	return entity, nil
}

func (r *Registry[D, E]) createLocked(data D) (E, error) {
	var zero E

	entity, err := r.resolve(len(r.entries), data)
	if err != nil {
		return zero, err
	}

	keys := entity.Keys()
	for _, k := range keys {
		if k == nil {
			return zero, fmt.Errorf("%w: entity derived a nil key", ErrMissingIdentifier)
		}
		if idx, taken := r.byKey[k]; taken {
			return zero, fmt.Errorf("%w: key %v already registered at index %d", ErrKeyConflict, k, idx)
		}
	}

	r.entries = append(r.entries, entity)
	for _, k := range keys {
		r.byKey[k] = entity.Index()
	}
	return entity, nil
}

// ByIndex returns the entity at position i, or ErrIndexOutOfRange.
func (r *Registry[D, E]) ByIndex(i int) (E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero E
	if i < 0 || i >= len(r.entries) {
		return zero, fmt.Errorf("%w: index %d, registry length %d", ErrIndexOutOfRange, i, len(r.entries))
	}
	return r.entries[i], nil
}

// ByKey returns the entity registered under key k, or ErrUnknownKey.
func (r *Registry[D, E]) ByKey(k Key) (E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero E
	if k == nil {
		return zero, fmt.Errorf("%w: nil key", ErrMissingIdentifier)
	}
	idx, ok := r.byKey[k]
	if !ok {
		return zero, fmt.Errorf("%w: %v", ErrUnknownKey, k)
	}
	return r.entries[idx], nil
}

// Extend creates one entity per data record, in order. A failed record stops
// the batch, but records already created in the same call stay registered:
// callers needing all-or-nothing must pre-validate.
func (r *Registry[D, E]) Extend(data []D) error {
	for i, d := range data {
		if _, err := r.Create(d); err != nil {
			return fmt.Errorf("extend: record %d: %w", i, err)
		}
	}
	return nil
}

// Load clears the registry and then extends it with data. Convenience
// composition of Clear and Extend, not an atomic primitive.
func (r *Registry[D, E]) Load(data []D) error {
	r.Clear()
	return r.Extend(data)
}

// Clear resets the registry to its initial empty state. The next Create
// assigns index 0 again. References to previously registered entities held
// elsewhere become stale.
func (r *Registry[D, E]) Clear() {
	r.mu.Lock()
	r.entries = nil
	r.byKey = make(map[Key]int)
	hook := r.hook
	r.mu.Unlock()

	if hook != nil {
		hook(newEvent(r.kind, OpClear, 0, ""))
	}
}

// Len returns the number of registered entities.
func (r *Registry[D, E]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// All returns a snapshot of all entities in index order.
func (r *Registry[D, E]) All() []E {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]E, len(r.entries))
	copy(out, r.entries)
	return out
}

func newEvent(kind EntityKind, op EventOp, index int, symbol string) Event {
	return Event{
		ID:        NewRandomID(),
		Kind:      kind,
		Op:        op,
		Index:     index,
		Symbol:    symbol,
		Timestamp: time.Now().Unix(),
	}
}
