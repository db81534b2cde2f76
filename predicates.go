// predicates.go: classification questions answered over a chain.
//
// Scope:
//   • Zero-policy helpers built on the Code payload.
//   • Traversal is outermost first; the outermost code is the effective one.
//   • Decoded chains (after Deserialize) answer the same as live ones.
//
// Out of scope:
//   • Status mapping and retry policy.
package xgxchain

// CodeOf returns the outermost Code found in e's chain, or "" if none.
func CodeOf(e Error) Code {
	for cur := &e; cur != nil && !cur.IsNil(); cur = cur.link() {
		if c, ok := layerCode(*cur); ok {
			return c
		}
	}
	return ""
}

// HasCode reports whether any layer of e carries code c.
func HasCode(e Error, c Code) bool {
	for cur := &e; cur != nil && !cur.IsNil(); cur = cur.link() {
		if lc, ok := layerCode(*cur); ok && lc == c {
			return true
		}
	}
	return false
}

// IsDefect reports whether e carries CodeDefect anywhere in its chain.
func IsDefect(e Error) bool { return HasCode(e, CodeDefect) }

// IsInterrupt reports whether e carries CodeInterrupt anywhere in its chain.
func IsInterrupt(e Error) bool { return HasCode(e, CodeInterrupt) }
