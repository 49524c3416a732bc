// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow_test

import (
	"errors"
	"reflect"
	"testing"

	"code.hybscloud.com/flow"
)

func TestRavelRoundTrip(t *testing.T) {
	typ := flow.NamedTuple("RavelState", "step", "z", "scale")
	tree, _ := typ.New(int32(3), mustArray(t, []float64{1, 2, 3, 4}, 2, 2), []any{float32(0.5), uint(7)})

	buf, unravel, err := flow.Ravel(tree)
	if err != nil {
		t.Fatalf("Ravel: %v", err)
	}
	if want := []float64{3, 1, 2, 3, 4, 0.5, 7}; !reflect.DeepEqual(buf, want) {
		t.Fatalf("buf got %v, want %v", buf, want)
	}
	back, err := unravel(buf)
	if err != nil {
		t.Fatalf("unravel: %v", err)
	}
	rt := back.(flow.Tuple)
	if rt.Type() != typ {
		t.Fatalf("type got %v, want %v", rt.Type(), typ)
	}
	if step, _ := rt.Get("step"); step != int32(3) {
		t.Fatalf("step got %v (%T), want int32 3", step, step)
	}
	z, _ := rt.Get("z")
	if !z.(flow.Array).Equal(mustArray(t, []float64{1, 2, 3, 4}, 2, 2)) {
		t.Fatalf("z got %v", z)
	}
	scale, _ := rt.Get("scale")
	if want := []any{float32(0.5), uint(7)}; !reflect.DeepEqual(scale, want) {
		t.Fatalf("scale got %v, want %v", scale, want)
	}
}

func TestRavelErrors(t *testing.T) {
	if _, _, err := flow.Ravel([]any{1.0, "x"}); !errors.Is(err, flow.ErrNotNumeric) {
		t.Fatalf("got %v, want ErrNotNumeric", err)
	}
	_, unravel, err := flow.Ravel([]any{1.0, 2.0})
	if err != nil {
		t.Fatalf("Ravel: %v", err)
	}
	if _, err := unravel([]float64{1}); !errors.Is(err, flow.ErrLeafCount) {
		t.Fatalf("got %v, want ErrLeafCount", err)
	}
}

func TestRavelEmpty(t *testing.T) {
	buf, unravel, err := flow.Ravel(nil)
	if err != nil || len(buf) != 0 {
		t.Fatalf("got %v, %v", buf, err)
	}
	back, err := unravel(nil)
	if err != nil || back != nil {
		t.Fatalf("unravel got %v, %v", back, err)
	}
}
