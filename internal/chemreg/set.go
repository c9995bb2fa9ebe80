package chemreg

import "fmt"

// ElementRegistry is the interning registry for elements, with symbol-based
// lookup helpers.
type ElementRegistry struct {
	*Registry[ElementData, *Element]
}

// NewElementRegistry creates an empty element registry.
func NewElementRegistry() *ElementRegistry {
	return &ElementRegistry{NewRegistry(KindElement, resolveElement)}
}

// BySymbol returns the element registered under symbol.
func (r *ElementRegistry) BySymbol(symbol string) (*Element, error) {
	return r.ByKey(symbol)
}

// ValenceElementRegistry is the interning registry for valence elements.
type ValenceElementRegistry struct {
	*Registry[ValenceElementData, *ValenceElement]
}

// NewValenceElementRegistry creates an empty valence element registry.
func NewValenceElementRegistry() *ValenceElementRegistry {
	return &ValenceElementRegistry{NewRegistry(KindValenceElement, resolveValenceElement)}
}

// BySymbol returns the valence element registered under its display symbol,
// e.g. "Fe(+2)".
func (r *ValenceElementRegistry) BySymbol(symbol string) (*ValenceElement, error) {
	return r.ByKey(symbol)
}

// ByComposition returns the valence element for the (element, valence) pair.
func (r *ValenceElementRegistry) ByComposition(element *Element, valence int) (*ValenceElement, error) {
	if element == nil {
		return nil, fmt.Errorf("%w: nil element", ErrMissingIdentifier)
	}
	return r.ByKey(ValenceKey{Element: element, Valence: valence})
}

// GroupRegistry is the interning registry for atomic groups.
type GroupRegistry struct {
	*Registry[AtomicGroupData, *AtomicGroup]
}

// NewGroupRegistry creates an empty atomic group registry.
func NewGroupRegistry() *GroupRegistry {
	return &GroupRegistry{NewRegistry(KindAtomicGroup, resolveAtomicGroup)}
}

// BySymbol returns the group registered under its display symbol.
func (r *GroupRegistry) BySymbol(symbol string) (*AtomicGroup, error) {
	return r.ByKey(symbol)
}

// Set bundles one registry per entity kind into an explicit arena owned by
// whoever wires up the system. Entities reference each other across the
// set's registries; clearing a single registry while another still holds
// references into it leaves those references stale, which is why Clear
// always resets all three together.
type Set struct {
	Elements        *ElementRegistry
	ValenceElements *ValenceElementRegistry
	Groups          *GroupRegistry

	logger Logger
}

// NewSet creates a set of three empty registries with a no-op logger.
func NewSet() *Set {
	return NewSetWithLogger(NewNoOpLogger())
}

// NewSetWithLogger creates a set that logs through the given logger.
func NewSetWithLogger(logger Logger) *Set {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	return &Set{
		Elements:        NewElementRegistry(),
		ValenceElements: NewValenceElementRegistry(),
		Groups:          NewGroupRegistry(),
		logger:          logger,
	}
}

// SetNotificationManager routes every registry event of the set through nm,
// broadcast to all registered notifiers. A nil manager disables events.
func (s *Set) SetNotificationManager(nm *NotificationManager) {
	var hook func(Event)
	if nm != nil {
		hook = nm.Broadcast
	}
	s.Elements.SetEventHook(hook)
	s.ValenceElements.SetEventHook(hook)
	s.Groups.SetEventHook(hook)
}

// Clear resets all three registries, dependents first, so no registry is
// ever emptied while another still references into it.
func (s *Set) Clear() {
	s.Groups.Clear()
	s.ValenceElements.Clear()
	s.Elements.Clear()
	s.logger.Debugf("set cleared")
}

// Len returns the total number of entities across all three registries.
func (s *Set) Len() int {
	return s.Elements.Len() + s.ValenceElements.Len() + s.Groups.Len()
}
