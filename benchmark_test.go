// benchmark_test.go: construction, sharing and codec costs.
package xgxchain

import (
	"testing"
)

func BenchmarkNew(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		e := New("short message")
		e.Release()
	}
}

func BenchmarkWrapSentinel(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		e := Wrap(errPermission, "api gateway error")
		e.Release()
	}
}

func BenchmarkCopyRelease(b *testing.B) {
	e := Wrap(New("inner"), "outer")
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		c := e.Copy()
		c.Release()
	}
}

func buildDeep(depth int) Error {
	e := NewWithPayload("leaf", loginRequest{User: "alice"})
	for range depth {
		next := Wrap(e, "layer")
		e.Release()
		e = next
	}
	return e
}

func BenchmarkMessageDeep(b *testing.B) {
	e := buildDeep(32)
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_ = e.Message()
	}
}

func BenchmarkAsDeep(b *testing.B) {
	e := buildDeep(32)
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_, _ = As[loginRequest](e)
	}
}

func BenchmarkSerializeRoundTrip(b *testing.B) {
	e := Wrap(WithCode(buildDeep(8), CodeTimeout, "query"), "api")
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		d := Deserialize(Serialize(e))
		d.Release()
	}
}
