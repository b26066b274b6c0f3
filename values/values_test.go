package values_test

import (
	"testing"

	"github.com/QuTech-Delft/libqasm-sub003/types"
	"github.com/QuTech-Delft/libqasm-sub003/values"
)

func TestTypeOfRangeOfScalars(t *testing.T) {
	v := values.ConstInt(42)
	if !types.Equal(v.TypeOf(), types.Scalar(types.Int)) {
		t.Fatalf("TypeOf = %v", v.TypeOf())
	}
	if v.RangeOf() != 1 {
		t.Fatalf("RangeOf = %d, want 1", v.RangeOf())
	}
}

func TestVariableRefRange(t *testing.T) {
	qv := &values.Variable{Name: "q", Type: types.ArrayOf(types.Qubit, 5)}
	ref := values.VariableRef{Var: qv}
	if ref.RangeOf() != 5 {
		t.Fatalf("RangeOf = %d, want 5", ref.RangeOf())
	}
	if !ref.TypeOf().Assignable {
		t.Fatal("VariableRef should be assignable")
	}
}

func TestIndexRefRange(t *testing.T) {
	qv := &values.Variable{Name: "q", Type: types.ArrayOf(types.Qubit, 5)}
	ref := values.IndexRef{Var: qv, Indices: []int{0, 2, 4}}
	if ref.RangeOf() != 3 {
		t.Fatalf("RangeOf = %d, want 3", ref.RangeOf())
	}
	if ref.TypeOf().Element != types.Qubit || ref.TypeOf().Array {
		t.Fatalf("TypeOf = %v, want scalar qubit", ref.TypeOf())
	}
}

func TestPromoteNumericCast(t *testing.T) {
	v, ok := values.Promote(values.ConstInt(3), types.Scalar(types.Float), false)
	if !ok {
		t.Fatal("int->float promotion should succeed")
	}
	if f, ok := v.(values.ConstReal); !ok || f != 3 {
		t.Fatalf("got %#v", v)
	}
}

func TestPromoteImpossible(t *testing.T) {
	_, ok := values.Promote(values.ConstString("x"), types.Scalar(types.Int), false)
	if ok {
		t.Fatal("string->int should not promote")
	}
}

func TestPromoteNonConstantRequiresExactType(t *testing.T) {
	qv := &values.Variable{Name: "q", Type: types.Scalar(types.Int)}
	ref := values.VariableRef{Var: qv}
	if _, ok := values.Promote(ref, types.Scalar(types.Float), false); ok {
		t.Fatal("non-constant references should not implicitly cast")
	}
	if v, ok := values.Promote(ref, types.Scalar(types.Int), false); !ok || v != Value(ref) {
		t.Fatal("non-constant references should promote to their own exact type")
	}
}

// Value is a tiny local alias to keep the comparison above readable.
type Value = values.Value

func TestPromoteReplication(t *testing.T) {
	v, ok := values.Promote(values.ConstReal(1.5), types.ArrayOf(types.Float, 3), true)
	if !ok {
		t.Fatal("replication should succeed when allowed")
	}
	arr, ok := v.(values.ConstRealArray)
	if !ok || len(arr) != 3 || arr[0] != 1.5 || arr[2] != 1.5 {
		t.Fatalf("got %#v", v)
	}
}

func TestPromoteReplicationDisallowedByDefault(t *testing.T) {
	if _, ok := values.Promote(values.ConstReal(1.5), types.ArrayOf(types.Float, 3), false); ok {
		t.Fatal("replication should not fire unless explicitly requested")
	}
}

func TestCheckAllOfArrayValuesAxisAllZero(t *testing.T) {
	zero := values.ConstAxis{0, 0, 0}
	if !values.CheckAllOfArrayValues(zero, values.IsZero) {
		t.Fatal("all-zero axis should satisfy IsZero for every component")
	}
	nonZero := values.ConstAxis{0, 1, 0}
	if values.CheckAllOfArrayValues(nonZero, values.IsZero) {
		t.Fatal("non-zero axis should not satisfy IsZero for every component")
	}
}

func TestConstRealMatrixAt(t *testing.T) {
	m := values.ConstRealMatrix{Rows: 2, Cols: 2, Data: []float64{1, 2, 3, 4}}
	if m.At(1, 0) != 3 {
		t.Fatalf("At(1,0) = %v, want 3", m.At(1, 0))
	}
}

func TestUnitarySquare(t *testing.T) {
	sq := values.ConstComplexMatrix{Rows: 2, Cols: 2, Data: make([]complex128, 4)}
	if !sq.IsUnitarySquare() {
		t.Fatal("2x2 should be square")
	}
	rect := values.ConstComplexMatrix{Rows: 2, Cols: 3, Data: make([]complex128, 6)}
	if rect.IsUnitarySquare() {
		t.Fatal("2x3 should not be square")
	}
}
