package configs

import (
	"errors"
	"fmt"
	"testing"
)

var testSchema = `
max_idle_steps?: int & >0
trace_style?: "none" | "formal" | "visual" | "visual-formal"
tape_bytes?: [...int]
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)

	var n int
	err := loader.AssignFirst("max_idle_steps", &n)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5000 {
		t.Fatalf("got %d", n)
	}

	var list []int
	err = loader.AssignFirst("tape_bytes", &list)
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", list); str != "[8 16]" {
		t.Fatalf("got %s", str)
	}

	err = loader.AssignFirst("not", &list)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}

}

func TestLoaderIterCueValues(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/test.cue",
		"testdata/test2.cue",
	}, testSchema)

	var styles []string
	for value, err := range loader.IterCueValues("trace_style") {
		if err != nil {
			t.Fatal(err)
		}
		var s string
		if err := value.Decode(&s); err != nil {
			t.Fatal(err)
		}
		styles = append(styles, s)
	}
	if str := fmt.Sprintf("%v", styles); str != "[formal visual]" {
		t.Fatalf("got %q", str)
	}

	var steps []int
	for n := range All[int](loader, "max_idle_steps") {
		steps = append(steps, n)
	}
	if str := fmt.Sprintf("%v", steps); str != "[5000 100]" {
		t.Fatalf("got %q", str)
	}

	if len(loader.Paths()) != 2 {
		t.Fatalf("got %v", loader.Paths())
	}
}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/bad.cue",
	}, testSchema)
	var n int
	err := loader.AssignFirst("max_idle_steps", &n)
	if err == nil {
		t.Fatal("should error")
	}
	if loader.Err() == nil {
		t.Fatal("should error")
	}
	t.Logf("%v", err)
}

func TestSchemaConstraint(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, `
max_idle_steps?: int & <10
trace_style?: string
tape_bytes?: [...int]
`)
	if err := loader.Err(); err == nil {
		t.Fatal("should violate constraint")
	}
}

func TestEmptyLoader(t *testing.T) {
	var loader Loader
	if n := First[int](loader, "max_idle_steps"); n != 0 {
		t.Fatalf("got %d", n)
	}
	loader = NewLoader(nil, testSchema)
	if n := First[int](loader, "max_idle_steps"); n != 0 {
		t.Fatalf("got %d", n)
	}
}
