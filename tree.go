// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// FlattenFunc splits a node into its children and auxiliary data.
// The aux value is handed back to the matching UnflattenFunc and is
// compared with reflect.DeepEqual when tree structures are compared.
type FlattenFunc func(node any) (children []any, aux any)

// UnflattenFunc rebuilds a node from aux and rebuilt children.
type UnflattenFunc func(aux any, children []any) any

type nodeDef struct {
	name      string
	flatten   FlattenFunc
	unflatten UnflattenFunc
}

// registry maps node keys to their flatten/unflatten pair. A key is the
// node's reflect.Type, except for Tuple values which are keyed by their
// *TupleType so that each named tuple type is its own node kind.
var registry = struct {
	mu    sync.RWMutex
	nodes map[any]nodeDef
}{nodes: make(map[any]nodeDef)}

var (
	listType = reflect.TypeFor[[]any]()
	dictType = reflect.TypeFor[map[string]any]()
)

func init() {
	registerNode(listType, "list", flattenList, unflattenList)
	registerNode(dictType, "dict", flattenDict, unflattenDict)
}

// Register makes values of type t interior tree nodes.
// Returns false, leaving the existing entry in place, if t is already registered.
func Register(t reflect.Type, flatten FlattenFunc, unflatten UnflattenFunc) bool {
	if t == nil || flatten == nil || unflatten == nil {
		panic("flow: Register with nil type or function")
	}
	return registerNode(t, t.String(), flatten, unflatten)
}

// Registered reports whether t is registered as a tree node.
func Registered(t reflect.Type) bool {
	_, ok := lookupNode(t)
	return ok
}

func registerNode(key any, name string, flatten FlattenFunc, unflatten UnflattenFunc) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, ok := registry.nodes[key]; ok {
		return false
	}
	registry.nodes[key] = nodeDef{name: name, flatten: flatten, unflatten: unflatten}
	return true
}

func lookupNode(key any) (nodeDef, bool) {
	registry.mu.RLock()
	nd, ok := registry.nodes[key]
	registry.mu.RUnlock()
	return nd, ok
}

func nodeKey(v any) any {
	if t, ok := v.(Tuple); ok && t.typ != nil {
		return t.typ
	}
	return reflect.TypeOf(v)
}

func flattenList(node any) ([]any, any) {
	return slices.Clone(node.([]any)), nil
}

func unflattenList(_ any, children []any) any {
	return slices.Clone(children)
}

func flattenDict(node any) ([]any, any) {
	m := node.(map[string]any)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	children := make([]any, len(keys))
	for i, k := range keys {
		children[i] = m[k]
	}
	return children, keys
}

func unflattenDict(aux any, children []any) any {
	keys := aux.([]string)
	m := make(map[string]any, len(keys))
	for i, k := range keys {
		m[k] = children[i]
	}
	return m
}

type defKind uint8

const (
	leafDef defKind = iota
	noneDef
	nodeDefKind
)

// TreeDef describes the structure of a flattened tree: which node kinds
// sit where, and how many leaves hang below each of them.
type TreeDef struct {
	kind     defKind
	key      any
	name     string
	aux      any
	children []TreeDef
	leaves   int
}

// NumLeaves returns the number of leaves described by d.
func (d TreeDef) NumLeaves() int { return d.leaves }

// IsLeaf reports whether d describes a single leaf.
func (d TreeDef) IsLeaf() bool { return d.kind == leafDef }

// Equal reports whether d and o describe the same structure.
// Node kinds compare by registry key identity.
func (d TreeDef) Equal(o TreeDef) bool {
	if d.kind != o.kind || d.leaves != o.leaves || len(d.children) != len(o.children) {
		return false
	}
	if d.kind == nodeDefKind {
		if d.key != o.key || !reflect.DeepEqual(d.aux, o.aux) {
			return false
		}
	}
	for i := range d.children {
		if !d.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// String renders d with * for leaves, e.g. "State(*, list(*, *))".
func (d TreeDef) String() string {
	var b strings.Builder
	d.write(&b)
	return b.String()
}

func (d TreeDef) write(b *strings.Builder) {
	switch d.kind {
	case leafDef:
		b.WriteByte('*')
		return
	case noneDef:
		b.WriteString("nil")
		return
	}
	b.WriteString(d.name)
	b.WriteByte('(')
	for i, c := range d.children {
		if i > 0 {
			b.WriteString(", ")
		}
		c.write(b)
	}
	b.WriteByte(')')
}

// Flatten returns the leaves of tree in depth-first order and its structure.
// Values whose node key is not registered are leaves; nil is an empty node.
func Flatten(tree any) ([]any, TreeDef) {
	var leaves []any
	def := flattenInto(tree, &leaves)
	return leaves, def
}

func flattenInto(v any, leaves *[]any) TreeDef {
	if v == nil {
		return TreeDef{kind: noneDef}
	}
	key := nodeKey(v)
	nd, ok := lookupNode(key)
	if !ok {
		*leaves = append(*leaves, v)
		return TreeDef{kind: leafDef, leaves: 1}
	}
	children, aux := nd.flatten(v)
	def := TreeDef{
		kind:     nodeDefKind,
		key:      key,
		name:     nd.name,
		aux:      aux,
		children: make([]TreeDef, len(children)),
	}
	for i, c := range children {
		def.children[i] = flattenInto(c, leaves)
		def.leaves += def.children[i].leaves
	}
	return def
}

// Leaves returns the leaves of tree in depth-first order.
func Leaves(tree any) []any {
	leaves, _ := Flatten(tree)
	return leaves
}

// Unflatten rebuilds a tree of structure def from leaves.
func Unflatten(def TreeDef, leaves []any) (any, error) {
	if len(leaves) != def.leaves {
		return nil, fmt.Errorf("%w: structure %s has %d, got %d", ErrLeafCount, def, def.leaves, len(leaves))
	}
	v, _, err := def.build(leaves)
	return v, err
}

func (d TreeDef) build(leaves []any) (any, []any, error) {
	switch d.kind {
	case leafDef:
		return leaves[0], leaves[1:], nil
	case noneDef:
		return nil, leaves, nil
	}
	nd, _ := lookupNode(d.key)
	children := make([]any, len(d.children))
	for i, c := range d.children {
		var err error
		if children[i], leaves, err = c.build(leaves); err != nil {
			return nil, nil, err
		}
	}
	return nd.unflatten(d.aux, children), leaves, nil
}

// MapLeaves returns a tree of the same structure as tree with every leaf
// replaced by fn(leaf).
func MapLeaves(tree any, fn func(leaf any) any) (any, error) {
	leaves, def := Flatten(tree)
	for i, l := range leaves {
		leaves[i] = fn(l)
	}
	return Unflatten(def, leaves)
}
