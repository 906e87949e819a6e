// Package selection tracks what the user has highlighted in the graph view
// and turns delete keystrokes into data-filter requests.
//
// The state machine has four levels: no selection, an outer-blob set, an
// inner-blob set, and a node set. Blob and node selections at different
// levels never merge: switching levels clears the previous selection first.
// Hit-testing against padded blob hulls lives in this package too, so the
// clickable region matches the boundary the renderer draws.
package selection

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/codemap/pkg/graph"
)

// Level identifies what kind of thing is currently selected.
type Level int

const (
	LevelNone Level = iota
	LevelOuterBlob
	LevelInnerBlob
	LevelNode
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelOuterBlob:
		return "outerBlob"
	case LevelInnerBlob:
		return "innerBlob"
	case LevelNode:
		return "node"
	}
	return "unknown"
}

// blobLevel maps a selection level onto the group-path nesting index.
func (l Level) blobLevel() int {
	if l == LevelInnerBlob {
		return 1
	}
	return 0
}

// FilterRequest is emitted when the user deletes a selection. It asks the
// surrounding query layer to exclude the named values from one dimension.
type FilterRequest struct {
	ID     uuid.UUID `json:"id"`
	Kind   string    `json:"kind"` // Always "dim".
	Field  string    `json:"field"`
	Mode   string    `json:"mode"` // Always "exclude".
	Values []string  `json:"values"`
}

// Manager is the selection state machine for one graph view.
//
// Dims names the data dimension behind each blob nesting level, outermost
// first; the last entry is the leaf dimension used for node deletions.
// Emit receives filter requests produced by delete keystrokes; a nil Emit
// silently drops them.
type Manager struct {
	Graph *graph.Graph
	Dims  []string
	Emit  func(FilterRequest)

	level Level
	blobs map[string]bool // Selected blob keys, at level.blobLevel().
	nodes map[string]bool // Selected node IDs.
}

// NewManager creates a selection manager with no active selection.
func NewManager(g *graph.Graph, dims []string, emit func(FilterRequest)) *Manager {
	return &Manager{
		Graph: g,
		Dims:  dims,
		Emit:  emit,
		blobs: make(map[string]bool),
		nodes: make(map[string]bool),
	}
}

// Level returns the current selection level.
func (m *Manager) Level() Level { return m.level }

// SelectedBlobs returns the selected blob keys in sorted order.
func (m *Manager) SelectedBlobs() []string { return sortedKeys(m.blobs) }

// SelectedNodes returns the selected node IDs in sorted order.
func (m *Manager) SelectedNodes() []string { return sortedKeys(m.nodes) }

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clear drops any active selection.
func (m *Manager) Clear() {
	m.level = LevelNone
	m.blobs = make(map[string]bool)
	m.nodes = make(map[string]bool)
}

// =============================================================================
// Click Handling
// =============================================================================

// AltClick handles an alt-modified click at graph-space coordinates against
// the blob hulls of the given selection level (LevelOuterBlob or
// LevelInnerBlob). A hit toggles the blob key in the selection set; switching
// levels clears the previous selection first; a miss outside every hull is a
// no-op. Returns the hit blob key, or "".
func (m *Manager) AltClick(gx, gy float64, level Level) string {
	if level != LevelOuterBlob && level != LevelInnerBlob {
		return ""
	}
	key := HitBlob(m.Graph, level.blobLevel(), gx, gy)
	if key == "" {
		return ""
	}

	// Never merge selections across levels.
	if m.level != level {
		m.Clear()
		m.level = level
	}
	if m.blobs[key] {
		delete(m.blobs, key)
		if len(m.blobs) == 0 {
			m.level = LevelNone
		}
	} else {
		m.blobs[key] = true
	}
	return key
}

// BackgroundClick handles a plain click on empty canvas: all selection is
// cleared.
func (m *Manager) BackgroundClick() {
	m.Clear()
}

// ClickNode handles a plain or shift-modified click on a node.
//
// Shift toggles the node in a multi-select set. A plain click replaces the
// set with just that node, except when the node is already the sole
// selection, in which case the click toggles it off.
func (m *Manager) ClickNode(id string, shift bool) {
	if m.Graph.NodeByID(id) == nil {
		return
	}
	if m.level != LevelNode {
		m.Clear()
	}

	if shift {
		if m.nodes[id] {
			delete(m.nodes, id)
		} else {
			m.nodes[id] = true
		}
	} else {
		if len(m.nodes) == 1 && m.nodes[id] {
			m.nodes = make(map[string]bool)
		} else {
			m.nodes = map[string]bool{id: true}
		}
	}

	if len(m.nodes) == 0 {
		m.level = LevelNone
	} else {
		m.level = LevelNode
	}
}

// =============================================================================
// Deletion
// =============================================================================

// DeleteKey handles a delete/backspace keystroke. An active blob selection
// takes priority over a node selection; either emits one exclude filter for
// the selected dimension and clears the selection. With nothing selected the
// keystroke is a no-op. Returns the emitted request and true, or false.
func (m *Manager) DeleteKey() (FilterRequest, bool) {
	switch m.level {
	case LevelOuterBlob, LevelInnerBlob:
		if len(m.blobs) == 0 {
			return FilterRequest{}, false
		}
		req := FilterRequest{
			ID:     uuid.New(),
			Kind:   "dim",
			Field:  m.dimAt(m.level.blobLevel()),
			Mode:   "exclude",
			Values: leafLabels(m.SelectedBlobs()),
		}
		m.Clear()
		m.send(req)
		return req, true

	case LevelNode:
		if len(m.nodes) == 0 {
			return FilterRequest{}, false
		}
		var values []string
		for _, id := range m.SelectedNodes() {
			if n := m.Graph.NodeByID(id); n != nil {
				values = append(values, n.LeafLabel())
			}
		}
		req := FilterRequest{
			ID:     uuid.New(),
			Kind:   "dim",
			Field:  m.leafDim(),
			Mode:   "exclude",
			Values: values,
		}
		m.Clear()
		m.send(req)
		return req, true
	}
	return FilterRequest{}, false
}

// dimAt returns the dimension name behind a blob nesting level.
func (m *Manager) dimAt(level int) string {
	if level < len(m.Dims) {
		return m.Dims[level]
	}
	return ""
}

// leafDim returns the innermost dimension name, used for node deletions.
func (m *Manager) leafDim() string {
	if len(m.Dims) == 0 {
		return ""
	}
	return m.Dims[len(m.Dims)-1]
}

// leafLabels strips composite group keys down to their last path segment,
// the human-readable label the query layer filters on.
func leafLabels(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if j := strings.LastIndex(k, graph.GroupKeySep); j >= 0 {
			k = k[j+len(graph.GroupKeySep):]
		}
		out[i] = k
	}
	return out
}

func (m *Manager) send(req FilterRequest) {
	if m.Emit != nil {
		m.Emit(req)
	}
}
