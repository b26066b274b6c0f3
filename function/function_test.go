package function_test

import (
	"testing"

	"github.com/QuTech-Delft/libqasm-sub003/function"
	"github.com/QuTech-Delft/libqasm-sub003/types"
	"github.com/QuTech-Delft/libqasm-sub003/values"
)

func TestResolveUnknownFunction(t *testing.T) {
	r := function.NewRegistry()
	_, err := r.Resolve("sin", []values.Value{values.ConstReal(1)})
	if _, ok := err.(*function.UnknownFunctionError); !ok {
		t.Fatalf("err = %v, want UnknownFunctionError", err)
	}
}

func TestResolveNoMatchingOverload(t *testing.T) {
	r := function.DefaultRegistry()
	_, err := r.Resolve("sin", []values.Value{values.ConstString("x")})
	if _, ok := err.(*function.NoMatchingOverloadError); !ok {
		t.Fatalf("err = %v, want NoMatchingOverloadError", err)
	}
}

func TestFoldConstantArguments(t *testing.T) {
	r := function.DefaultRegistry()
	v, err := r.Resolve("operator+", []values.Value{values.ConstInt(2), values.ConstInt(3)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got, want := v.(values.ConstInt), values.ConstInt(5); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFoldKeepsSymbolicCallForNonConstant(t *testing.T) {
	r := function.DefaultRegistry()
	variable := &values.Variable{Name: "x", Type: types.Scalar(types.Int)}
	ref := values.VariableRef{Var: variable}
	v, err := r.Resolve("operator+", []values.Value{ref, values.ConstInt(1)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	call, ok := v.(values.FunctionCall)
	if !ok {
		t.Fatalf("got %T, want values.FunctionCall", v)
	}
	if call.Name != "operator+" || len(call.Args) != 2 {
		t.Fatalf("got %+v", call)
	}
}

func TestResolvePrefersFewestPromotions(t *testing.T) {
	r := function.NewRegistry()
	r.Add(function.Signature{
		Name: "id", Params: "f", Result: types.Scalar(types.Float),
		Impl: func(args []values.Value) (values.Value, error) {
			return function.Fold("id", types.Scalar(types.Float), args, func(a []values.Value) (values.Value, error) {
				return a[0], nil
			})
		},
	})
	r.Add(function.Signature{
		Name: "id", Params: "i", Result: types.Scalar(types.Int),
		Impl: func(args []values.Value) (values.Value, error) {
			return function.Fold("id", types.Scalar(types.Int), args, func(a []values.Value) (values.Value, error) {
				return a[0], nil
			})
		},
	})
	v, err := r.Resolve("id", []values.Value{values.ConstInt(4)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, ok := v.(values.ConstInt); !ok {
		t.Fatalf("got %T, want ConstInt (exact match should win over promoting overload)", v)
	}
}

func TestArithmeticOnFloat(t *testing.T) {
	r := function.DefaultRegistry()
	v, err := r.Resolve("operator*", []values.Value{values.ConstReal(2.5), values.ConstReal(4)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got, want := v.(values.ConstReal), values.ConstReal(10); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStringConcat(t *testing.T) {
	r := function.DefaultRegistry()
	v, err := r.Resolve("operator+", []values.Value{values.ConstString("a"), values.ConstString("b")})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got, want := v.(values.ConstString), values.ConstString("ab"); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestComparisonReturnsBool(t *testing.T) {
	r := function.DefaultRegistry()
	v, err := r.Resolve("operator<", []values.Value{values.ConstInt(1), values.ConstInt(2)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := v.(values.ConstBool); !bool(got) {
		t.Fatal("1 < 2 should be true")
	}
}

func TestEqualityOnComplex(t *testing.T) {
	r := function.DefaultRegistry()
	a := values.ConstComplex(complex(1, 2))
	b := values.ConstComplex(complex(1, 2))
	v, err := r.Resolve("operator==", []values.Value{a, b})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !bool(v.(values.ConstBool)) {
		t.Fatal("equal complex constants should compare equal")
	}
}

func TestUnaryMinus(t *testing.T) {
	r := function.DefaultRegistry()
	v, err := r.Resolve("operator-", []values.Value{values.ConstInt(7)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got, want := v.(values.ConstInt), values.ConstInt(-7); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSqrtOnFloat(t *testing.T) {
	r := function.DefaultRegistry()
	v, err := r.Resolve("sqrt", []values.Value{values.ConstReal(9)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got, want := v.(values.ConstReal), values.ConstReal(3); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestComplexConstructor(t *testing.T) {
	r := function.DefaultRegistry()
	v, err := r.Resolve("complex", []values.Value{values.ConstReal(1), values.ConstReal(2)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := values.ConstComplex(complex(1, 2))
	if got := v.(values.ConstComplex); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTernarySelectsBranch(t *testing.T) {
	r := function.DefaultRegistry()
	v, err := r.Resolve("operator?:", []values.Value{values.ConstBool(true), values.ConstInt(1), values.ConstInt(2)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got, want := v.(values.ConstInt), values.ConstInt(1); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAmbiguousOverload(t *testing.T) {
	r := function.NewRegistry()
	r.Add(function.Signature{
		Name: "f", Params: "f", Result: types.Scalar(types.Float),
		Impl: func(args []values.Value) (values.Value, error) {
			return function.Fold("f", types.Scalar(types.Float), args, func(a []values.Value) (values.Value, error) {
				return a[0], nil
			})
		},
	})
	r.Add(function.Signature{
		Name: "f", Params: "c", Result: types.Scalar(types.Complex),
		Impl: func(args []values.Value) (values.Value, error) {
			return function.Fold("f", types.Scalar(types.Complex), args, func(a []values.Value) (values.Value, error) {
				return a[0], nil
			})
		},
	})
	_, err := r.Resolve("f", []values.Value{values.ConstInt(1)})
	if _, ok := err.(*function.AmbiguousOverloadError); !ok {
		t.Fatalf("err = %v, want AmbiguousOverloadError", err)
	}
}
