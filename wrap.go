// wrap.go: converting foreign error chains into handle chains.
//
// Purpose
//   - Bring errors produced by the standard library (fmt.Errorf with %w),
//     github.com/pkg/errors (Wrap / WithMessage / WithStack), or any type
//     following the Unwrap() error / Cause() error conventions into the
//     handle model, one layer per unwrap step.
//
// Rules
//   - nil → Nil.
//   - An Error found anywhere in the chain ends the conversion; From takes a
//     share of it, so its identity, payloads and sentinels are preserved.
//   - A layer's text is its Error() with the ": <inner text>" suffix removed.
//     Layers whose text equals the inner text add nothing and are skipped
//     (pkg/errors withStack, transparent wrappers). Layers whose text does
//     not end with the inner text keep their full text.
//   - Unwrap() []error (errors.Join, multi-%w) is treated as a leaf: the
//     joined text becomes one layer.
//   - Conversion depth is capped, so a self-referential Unwrap cannot loop.
package xgxchain

import "errors"

// maxFromDepth caps foreign unwrap steps.
const maxFromDepth = 1 << 12

type causer interface{ Cause() error }

// From converts err into a handle chain.
func From(err error) Error {
	if err == nil {
		return Nil()
	}
	var chain []error
	var inner Error
	for cur := err; cur != nil && len(chain) < maxFromDepth; cur = unwrapOnce(cur) {
		if e, ok := cur.(Error); ok {
			inner = e.Copy()
			break
		}
		chain = append(chain, cur)
	}

	innerText := ""
	if !inner.IsNil() {
		innerText = inner.Message()
	}
	for i := len(chain) - 1; i >= 0; i-- {
		text := chain[i].Error()
		hasInner := i+1 < len(chain) || !inner.IsNil()
		if hasInner {
			if text == innerText {
				continue
			}
			if trimmed, ok := trimInner(text, innerText); ok {
				text = trimmed
			}
		}
		inner = Error{n: newDynamic(text, inner)}
		innerText = chain[i].Error()
	}
	return inner
}

// unwrapOnce follows a single wrapping step.
func unwrapOnce(err error) error {
	if u := errors.Unwrap(err); u != nil {
		return u
	}
	if c, ok := err.(causer); ok {
		return c.Cause()
	}
	return nil
}

func trimInner(text, inner string) (string, bool) {
	suffix := len(sep) + len(inner)
	if len(text) < suffix || text[len(text)-len(inner):] != inner || text[len(text)-suffix:len(text)-len(inner)] != sep {
		return "", false
	}
	return text[:len(text)-suffix], true
}
