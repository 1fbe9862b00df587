package surface

import (
	"sort"
	"strconv"
	"sync"
)

// node is the in-memory state of one labeled node.
type node struct {
	value   string
	checked bool
	text    string
	attrs   map[string]string
	classes map[string]struct{}
}

func newNode() *node {
	return &node{
		attrs:   make(map[string]string),
		classes: make(map[string]struct{}),
	}
}

// MemoryOption configures a Memory surface.
type MemoryOption func(*Memory)

// WithObserver registers a callback invoked after every mutation, in
// application order. The callback runs while the surface lock is held, so
// it must not call back into the surface.
func WithObserver(fn func(Op)) MemoryOption {
	return func(m *Memory) {
		m.observer = fn
	}
}

// WithNodes pre-creates empty nodes for the given identifiers.
func WithNodes(ids ...string) MemoryOption {
	return func(m *Memory) {
		for _, id := range ids {
			m.nodes[id] = newNode()
		}
	}
}

// var _ ensures that Memory implements the Surface interface at compile time.
var _ Surface = (*Memory)(nil)

// Memory is an in-memory Surface. It backs tests and also acts as the
// server-side shadow of a remote page: an observer can forward each Op to
// the client that renders it for real.
type Memory struct {
	mu       sync.RWMutex
	nodes    map[string]*node
	location string
	observer func(Op)
}

// NewMemory creates an empty in-memory surface.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{nodes: make(map[string]*node)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add creates empty nodes for the given identifiers. Existing nodes are
// left untouched.
func (m *Memory) Add(ids ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if _, ok := m.nodes[id]; !ok {
			m.nodes[id] = newNode()
		}
	}
}

func (m *Memory) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.nodes[id]
	return ok
}

func (m *Memory) Value(id string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n, ok := m.nodes[id]; ok {
		return n.value
	}
	return ""
}

func (m *Memory) SetValue(id, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[id]
	if !ok {
		return
	}
	n.value = value
	m.notify(Op{Kind: OpSetValue, Node: id, Value: value})
}

func (m *Memory) Checked(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n, ok := m.nodes[id]; ok {
		return n.checked
	}
	return false
}

func (m *Memory) SetChecked(id string, checked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[id]
	if !ok {
		return
	}
	n.checked = checked
	m.notify(Op{Kind: OpSetChecked, Node: id, Value: strconv.FormatBool(checked)})
}

func (m *Memory) Attr(id, name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n, ok := m.nodes[id]; ok {
		v, present := n.attrs[name]
		return v, present
	}
	return "", false
}

func (m *Memory) SetAttr(id, name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[id]
	if !ok {
		return
	}
	n.attrs[name] = value
	m.notify(Op{Kind: OpSetAttr, Node: id, Name: name, Value: value})
}

func (m *Memory) RemoveAttr(id, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[id]
	if !ok {
		return
	}
	if _, present := n.attrs[name]; !present {
		return
	}
	delete(n.attrs, name)
	m.notify(Op{Kind: OpRemoveAttr, Node: id, Name: name})
}

func (m *Memory) HasClass(id, class string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n, ok := m.nodes[id]; ok {
		_, present := n.classes[class]
		return present
	}
	return false
}

func (m *Memory) AddClass(id, class string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[id]
	if !ok {
		return
	}
	if _, present := n.classes[class]; present {
		return
	}
	n.classes[class] = struct{}{}
	m.notify(Op{Kind: OpAddClass, Node: id, Name: class})
}

func (m *Memory) RemoveClass(id, class string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[id]
	if !ok {
		return
	}
	if _, present := n.classes[class]; !present {
		return
	}
	delete(n.classes, class)
	m.notify(Op{Kind: OpRemoveClass, Node: id, Name: class})
}

func (m *Memory) Text(id string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n, ok := m.nodes[id]; ok {
		return n.text
	}
	return ""
}

func (m *Memory) SetText(id, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[id]
	if !ok {
		return
	}
	n.text = text
	m.notify(Op{Kind: OpSetText, Node: id, Value: text})
}

func (m *Memory) Navigate(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.location = url
	m.notify(Op{Kind: OpNavigate, Value: url})
}

// Location returns the destination of the most recent Navigate call, or
// the empty string if none happened.
func (m *Memory) Location() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.location
}

// Classes returns the classes currently set on a node, sorted for stable
// assertions.
func (m *Memory) Classes(id string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.nodes[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(n.classes))
	for c := range n.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (m *Memory) notify(op Op) {
	if m.observer != nil {
		m.observer(op)
	}
}
