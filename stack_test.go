// stack_test.go: stack capture payload.
package xgxchain

import (
	"strings"
	"testing"
)

//go:noinline
func failWithStack() Error {
	return WithStack(New("boom"), "captured")
}

func TestWithStack_StartsAtCaller(t *testing.T) {
	t.Parallel()

	e := failWithStack()
	st, ok := StackOf(e)
	if !ok || len(st) == 0 {
		t.Fatalf("expected a stack payload")
	}
	if !strings.HasSuffix(st[0].Function, ".failWithStack") {
		t.Fatalf("top frame: want failWithStack, got %q", st[0].Function)
	}
	if !strings.HasSuffix(st[0].File, "stack_test.go") || st[0].Line == 0 {
		t.Fatalf("top frame location: %s:%d", st[0].File, st[0].Line)
	}
	if len(st) < 2 || !strings.Contains(st[1].Function, "TestWithStack_StartsAtCaller") {
		t.Fatalf("second frame should be the test, got %+v", st)
	}
	if e.Message() != "captured: boom" {
		t.Fatalf("message: got=%q", e.Message())
	}
}

func TestStack_NotOnTheWire(t *testing.T) {
	t.Parallel()

	e := failWithStack()
	if IsSerializable(e) {
		t.Fatalf("stack payloads stay local")
	}
	got := Deserialize(Serialize(e))
	if _, ok := StackOf(got); ok {
		t.Fatalf("stack must not survive decoding")
	}
	if got.Message() != "captured: boom" {
		t.Fatalf("message: got=%q", got.Message())
	}
}

func TestStack_StringAndClone(t *testing.T) {
	t.Parallel()

	st := Stack{
		{Function: "pkg.fn", File: "/src/pkg/file.go", Line: 12},
		{Function: "pkg.caller", File: "/src/pkg/main.go", Line: 3},
	}
	if got := st.String(); got != "pkg.fn (file.go:12) +1" {
		t.Fatalf("String: got=%q", got)
	}
	if got := (Stack{}).String(); got != "(no frames)" {
		t.Fatalf("empty String: got=%q", got)
	}
	c := st.Clone()
	c[0].Line = 99
	if st[0].Line != 12 {
		t.Fatalf("Clone must not alias")
	}
	if Stack(nil).Clone() != nil {
		t.Fatalf("nil Clone stays nil")
	}
}
