// token.go: per-type identity used to look payloads up by type.
package xgxchain

// Token identifies a payload type. Two tokens are equal iff they were made
// for the same type argument.
type Token struct {
	key any
}

// tokenKey gives every instantiation its own dynamic type; comparing the
// boxed zero values compares those types.
type tokenKey[T any] struct{}

// TokenOf returns the Token for T.
func TokenOf[T any]() Token {
	return Token{key: tokenKey[T]{}}
}
