package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/QuTech-Delft/libqasm-sub003/diagnostics"
	"github.com/QuTech-Delft/libqasm-sub003/location"
)

func TestNewDefaultsMessage(t *testing.T) {
	d := diagnostics.New("")
	if d.Message != "<unknown error message>" {
		t.Fatalf("Message = %q", d.Message)
	}
}

func TestErrorPlainText(t *testing.T) {
	loc := location.New("prog.cq", true, location.Point{Line: 3, Column: 5}, location.Point{Line: 3, Column: 8})
	d := diagnostics.At("undefined name `i`", loc)
	got := d.Error()
	want := "Error at prog.cq:3:5..8: undefined name `i`"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestErrorNoLocation(t *testing.T) {
	d := diagnostics.New("boom")
	if got, want := d.Error(), "Error: boom"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestContextNoop(t *testing.T) {
	loc := location.AtPoint("a.cq", true, location.Point{Line: 1, Column: 1})
	d := diagnostics.At("msg", loc)
	var n location.Node
	n.SetLocation(location.AtPoint("b.cq", true, location.Point{Line: 9, Column: 9}))
	d.Context(n)
	if d.Location.FileName != "a.cq" {
		t.Fatalf("Context overwrote an existing location: %+v", d.Location)
	}
}

func TestContextFillsIn(t *testing.T) {
	d := diagnostics.New("msg")
	var n location.Node
	n.SetLocation(location.AtPoint("b.cq", true, location.Point{Line: 9, Column: 9}))
	d.Context(n)
	if !d.HasLoc || d.Location.FileName != "b.cq" {
		t.Fatalf("Context did not attach: %+v", d)
	}
}

func TestJSONNoLocation(t *testing.T) {
	d := diagnostics.New(`say "hi"`)
	j := d.JSON()
	for _, want := range []string{`"line":0`, `"character":0`, `"severity":1`, "\\u0022hi\\u0022"} {
		if !strings.Contains(j, want) {
			t.Fatalf("JSON() = %s, missing %q", j, want)
		}
	}
	if strings.Contains(j, "relatedInformation") {
		t.Fatalf("JSON() should have no relatedInformation without a file: %s", j)
	}
}

func TestJSONWithFile(t *testing.T) {
	loc := location.New("my file.cq", true, location.Point{Line: 2, Column: 1}, location.Point{Line: 2, Column: 3})
	d := diagnostics.At("bad", loc)
	j := d.JSON()
	if !strings.Contains(j, `"line":1`) {
		t.Fatalf("JSON() should be zero-based: %s", j)
	}
	if !strings.Contains(j, "file:///my%20file.cq") {
		t.Fatalf("JSON() should URL-encode the file name: %s", j)
	}
}

func TestListError(t *testing.T) {
	var l diagnostics.List
	l = l.Append(diagnostics.New("first"))
	l = l.Append(nil)
	l = l.Append(diagnostics.New("second"))
	if len(l) != 2 {
		t.Fatalf("len(l) = %d, want 2", len(l))
	}
	if got := l.Error(); got != "Error: first\nError: second" {
		t.Fatalf("Error() = %q", got)
	}
}
