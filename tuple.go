// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"code.hybscloud.com/atomix"
)

// TupleType is a named record type with an ordered set of fields.
// NamedTuple returns one canonical *TupleType per (name, fields) key,
// and the tree registry dispatches on that pointer.
type TupleType struct {
	name       string
	fields     []string
	index      map[string]int
	serial     uint32
	registered bool
}

// Tuple is an immutable instance of a TupleType.
// The zero Tuple has no type and no fields.
type Tuple struct {
	typ    *TupleType
	values []any
}

// tuples caches every TupleType created by NamedTuple, bucketed by name.
// Field lists are compared element-wise, so no separator can make two
// distinct lists collide.
var tuples = struct {
	mu     sync.Mutex
	serial atomix.Uint32
	types  map[string][]*TupleType
}{types: make(map[string][]*TupleType)}

// NamedTuple returns the tuple type for name and fields, creating and
// registering it with the tree registry on first use. Later calls with
// the same name and field order return the identical *TupleType.
//
// Panics if name is empty, or if fields contain an empty or repeated name.
func NamedTuple(name string, fields ...string) *TupleType {
	tuples.mu.Lock()
	defer tuples.mu.Unlock()
	for _, t := range tuples.types[name] {
		if slices.Equal(t.fields, fields) {
			return t
		}
	}
	t := newTupleType(name, fields)
	t.register()
	tuples.types[name] = append(tuples.types[name], t)
	return t
}

func newTupleType(name string, fields []string) *TupleType {
	if name == "" {
		panic("flow: empty tuple type name")
	}
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f == "" {
			panic(fmt.Sprintf("flow: %s: empty field name at position %d", name, i))
		}
		if _, dup := index[f]; dup {
			panic(fmt.Sprintf("flow: %s: duplicate field name %q", name, f))
		}
		index[f] = i
	}
	return &TupleType{
		name:   name,
		fields: append([]string(nil), fields...),
		index:  index,
		serial: tuples.serial.Add(1),
	}
}

// register installs t into the tree registry once.
func (t *TupleType) register() {
	if t.registered {
		return
	}
	registerNode(t, t.name, flattenTuple, func(_ any, children []any) any {
		return t.construct(children)
	})
	t.registered = true
}

func flattenTuple(node any) ([]any, any) {
	return node.(Tuple).Values(), nil
}

// Name returns the type name.
func (t *TupleType) Name() string { return t.name }

// Fields returns a copy of the field names in order.
func (t *TupleType) Fields() []string { return append([]string(nil), t.fields...) }

// Serial returns the creation serial of t. Serials increase with each
// new type, so they order types by first use.
func (t *TupleType) Serial() uint32 { return t.serial }

// String returns the type as "Name(f1, f2)".
func (t *TupleType) String() string {
	return t.name + "(" + strings.Join(t.fields, ", ") + ")"
}

// New constructs a tuple from positional values.
func (t *TupleType) New(values ...any) (Tuple, error) {
	if len(values) != len(t.fields) {
		return Tuple{}, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, t.name, len(t.fields), len(values))
	}
	return t.construct(append([]any(nil), values...)), nil
}

// Make constructs a tuple from field names. Every field must be given.
func (t *TupleType) Make(fields map[string]any) (Tuple, error) {
	values := make([]any, len(t.fields))
	for k, v := range fields {
		i, ok := t.index[k]
		if !ok {
			return Tuple{}, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, t.name, k)
		}
		values[i] = v
	}
	for _, f := range t.fields {
		if _, ok := fields[f]; !ok {
			return Tuple{}, fmt.Errorf("%w: %s.%s", ErrMissingField, t.name, f)
		}
	}
	return t.construct(values), nil
}

// construct takes ownership of values.
func (t *TupleType) construct(values []any) Tuple {
	return Tuple{typ: t, values: values}
}

// Type returns the tuple's type, or nil for the zero Tuple.
func (r Tuple) Type() *TupleType { return r.typ }

// Len returns the number of fields.
func (r Tuple) Len() int { return len(r.values) }

// At returns the i-th field value.
func (r Tuple) At(i int) any { return r.values[i] }

// Get returns the value of the named field.
func (r Tuple) Get(name string) (any, bool) {
	if r.typ == nil {
		return nil, false
	}
	i, ok := r.typ.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Values returns a copy of the field values in order.
func (r Tuple) Values() []any { return append([]any(nil), r.values...) }

// Update returns a copy of r with the named fields replaced.
// r is not modified.
func (r Tuple) Update(fields map[string]any) (Tuple, error) {
	if r.typ == nil {
		return Tuple{}, fmt.Errorf("%w: update of untyped tuple", ErrUnknownField)
	}
	values := r.Values()
	for k, v := range fields {
		i, ok := r.typ.index[k]
		if !ok {
			return Tuple{}, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, r.typ.name, k)
		}
		values[i] = v
	}
	return r.typ.construct(values), nil
}

// AsMap returns the fields as a map keyed by field name.
func (r Tuple) AsMap() map[string]any {
	m := make(map[string]any, len(r.values))
	if r.typ == nil {
		return m
	}
	for i, f := range r.typ.fields {
		m[f] = r.values[i]
	}
	return m
}

// String returns the tuple as "Name(f1=v1, f2=v2)".
func (r Tuple) String() string {
	if r.typ == nil {
		return "Tuple()"
	}
	var b strings.Builder
	b.WriteString(r.typ.name)
	b.WriteByte('(')
	for i, f := range r.typ.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", f, r.values[i])
	}
	b.WriteByte(')')
	return b.String()
}
