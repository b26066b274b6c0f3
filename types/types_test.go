package types_test

import "testing"

import "github.com/QuTech-Delft/libqasm-sub003/types"

func TestEqualIgnoresAssignable(t *testing.T) {
	a := types.Scalar(types.Int).AsAssignable()
	b := types.Scalar(types.Int)
	if !types.Equal(a, b) {
		t.Fatal("Equal should ignore Assignable")
	}
}

func TestEqualArraySize(t *testing.T) {
	a := types.ArrayOf(types.Qubit, 2)
	b := types.ArrayOf(types.Qubit, 3)
	if types.Equal(a, b) {
		t.Fatal("arrays of different sizes should not be equal")
	}
}

func TestPromoteNumericChain(t *testing.T) {
	cases := []struct {
		src, dst types.Kind
		want     bool
	}{
		{types.Bool, types.Int, true},
		{types.Int, types.Float, true},
		{types.Float, types.Complex, true},
		{types.Bool, types.Complex, true},
		{types.Complex, types.Int, false},
		{types.Float, types.Int, false},
		{types.String, types.Int, false},
		{types.Axis, types.Float, false},
	}
	for _, c := range cases {
		got := types.PromoteType(types.Scalar(c.src), types.Scalar(c.dst), false)
		if got != c.want {
			t.Errorf("PromoteType(%s, %s) = %v, want %v", c.src, c.dst, got, c.want)
		}
	}
}

func TestPromoteIdentity(t *testing.T) {
	if !types.PromoteType(types.Scalar(types.Axis), types.Scalar(types.Axis), false) {
		t.Fatal("identity promotion should always hold")
	}
}

func TestPromoteReplication(t *testing.T) {
	scalar := types.Scalar(types.Int)
	array := types.ArrayOf(types.Float, 3)
	if types.PromoteType(scalar, array, false) {
		t.Fatal("replication should require allowReplication=true")
	}
	if !types.PromoteType(scalar, array, true) {
		t.Fatal("int should replicate into float[3] when allowed")
	}
}

func TestPromoteArrayToArrayRequiresExactMatch(t *testing.T) {
	a := types.ArrayOf(types.Int, 3)
	b := types.ArrayOf(types.Float, 3)
	if types.PromoteType(a, b, true) {
		t.Fatal("int[3] should not promote to float[3]")
	}
	c := types.ArrayOf(types.Int, 3)
	if !types.PromoteType(a, c, true) {
		t.Fatal("int[3] should promote to itself")
	}
}

func TestElementTypePanicsOnScalar(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	types.ElementType(types.Scalar(types.Int))
}

func TestStringRendering(t *testing.T) {
	if got := types.Scalar(types.Qubit).String(); got != "qubit" {
		t.Fatalf("String() = %q", got)
	}
	if got := types.ArrayOf(types.Int, 4).String(); got != "int[4]" {
		t.Fatalf("String() = %q", got)
	}
}
