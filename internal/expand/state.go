package expand

// Namespace separates the panel kinds an identifier can be expanded
// in. An item id appears in both the item-list and item-detail
// namespaces, and assembly/item ids come from different collections,
// so entries are keyed by (namespace, id) rather than bare id.
type Namespace uint8

const (
	AssemblyDetail Namespace = iota
	AssemblyItems
	SubassemblyItems
	ItemDetail
)

type key struct {
	ns Namespace
	id string
}

type entry struct {
	key      key
	expanded bool
}

// State maps (namespace, id) to an expanded flag. Entries are stored
// in an arena slice with a map index into it; absent entries read as
// collapsed. State is independent of tree contents: entries whose id
// disappears from the current snapshot simply go unread until the id
// comes back.
type State struct {
	entries []entry
	index   map[key]int
}

// NewState returns an empty State; everything reads as collapsed.
func NewState() *State {
	return &State{index: make(map[key]int)}
}

// Expanded reports whether the given node is expanded.
func (s *State) Expanded(ns Namespace, id string) bool {
	slot, ok := s.index[key{ns, id}]
	if !ok {
		return false
	}
	return s.entries[slot].expanded
}

// Set records an explicit expanded value for the node.
func (s *State) Set(ns Namespace, id string, expanded bool) {
	k := key{ns, id}
	if slot, ok := s.index[k]; ok {
		s.entries[slot].expanded = expanded
		return
	}
	s.index[k] = len(s.entries)
	s.entries = append(s.entries, entry{key: k, expanded: expanded})
}

// Toggle flips the node's expanded flag and returns the new value.
func (s *State) Toggle(ns Namespace, id string) bool {
	next := !s.Expanded(ns, id)
	s.Set(ns, id, next)
	return next
}

// Len returns the number of tracked entries, expanded or not.
func (s *State) Len() int {
	return len(s.entries)
}
