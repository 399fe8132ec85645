package configs

import (
	"testing"
)

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/test2.cue", "testdata/test.cue"}, testSchema)

	style := First[string](loader, "trace_style")
	if style != "visual" {
		t.Fatalf("got %v", style)
	}

	if n := First[int](loader, "missing"); n != 0 {
		t.Fatalf("got %v", n)
	}

}

func TestFirstOr(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)
	if n := FirstOr(loader, "max_idle_steps", 7); n != 5000 {
		t.Fatalf("got %v", n)
	}
	if s := FirstOr(loader, "store_dir", "fallback"); s != "fallback" {
		t.Fatalf("got %v", s)
	}
}

func TestFirstMalformedPanics(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)
	defer func() {
		if recover() == nil {
			t.Fatal("should panic")
		}
	}()
	First[string](loader, "max_idle_steps")
}
