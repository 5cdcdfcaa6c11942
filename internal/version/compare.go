package version

import "strings"

// Operators accepted by Compare.
const (
	OpCompatible   = "~="
	OpLess         = "<"
	OpLessEqual    = "<="
	OpGreater      = ">"
	OpGreaterEqual = ">="
)

// tokens splits a version string on '.' and '-'.
func tokens(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-'
	})
}

// Compare evaluates `v1 op v2` over dot/dash-delimited tokens.
//
// Tokens are compared as plain strings, never numerically: "3" sorts after
// "10" because '3' > '1'. Package feeds have used this ordering since the
// first release, so it stays byte-for-byte compatible here. Missing trailing
// tokens compare as the empty string, which sorts before any non-empty token.
// The first differing token pair decides the outcome; fully equal sequences
// satisfy every operator except strict "<" and ">".
func Compare(v1, op, v2 string) bool {
	t1 := tokens(v1)
	t2 := tokens(v2)

	n := len(t1)
	if len(t2) > n {
		n = len(t2)
	}

	for i := 0; i < n; i++ {
		var a, b string
		if i < len(t1) {
			a = t1[i]
		}
		if i < len(t2) {
			b = t2[i]
		}
		if a == b {
			continue
		}
		switch op {
		case OpCompatible:
			return true
		case OpLess, OpLessEqual:
			return a < b
		case OpGreater, OpGreaterEqual:
			return a > b
		}
		return false
	}

	// All tokens equal: strict inequalities are the only operators an
	// identical pair does not satisfy.
	return op != OpLess && op != OpGreater
}
