package vars

import "testing"

func TestFirstNonZero(t *testing.T) {
	if n := FirstNonZero(0, 0, 3, 4); n != 3 {
		t.Fatalf("got %d", n)
	}
	if s := FirstNonZero("", ""); s != "" {
		t.Fatalf("got %q", s)
	}
}

func TestDerefOrZero(t *testing.T) {
	if n := DerefOrZero[int](nil); n != 0 {
		t.Fatalf("got %d", n)
	}
	v := 5
	if n := DerefOrZero(&v); n != 5 {
		t.Fatalf("got %d", n)
	}
}

func TestStrToBool(t *testing.T) {
	for _, s := range []string{"true", "Y", " yes ", "1", "on"} {
		if !StrToBool(s) {
			t.Fatalf("%q should be true", s)
		}
	}
	for _, s := range []string{"false", "no", "0", "", "maybe"} {
		if StrToBool(s) {
			t.Fatalf("%q should be false", s)
		}
	}
}
