package commitmsg

import "regexp"

// conventionalRe matches a conventional-commits subject line:
//
//	type(scope)!: body
//
// Group 1: type, Group 2: "(scope)" with optional "!", Group 3: body.
var conventionalRe = regexp.MustCompile(`^(build|chore|ci|docs|feat|fix|perf|refactor|revert|style|test)(\([A-Za-z -]+\)!?)?: (.+)$`)

// Conventional is a subject line split into its conventional-commit prefix
// and the free text after it.
type Conventional struct {
	Type  string // e.g. "feat"
	Scope string // "(api)" or "(api)!", empty if absent
	Body  string
}

// Prefix returns the text that precedes the body, including ": "
func (c Conventional) Prefix() string {
	return c.Type + c.Scope + ": "
}

// ParseConventional splits line into a Conventional.
//
//	ParseConventional("build(top-secret): Added feature") → {build, (top-secret), Added feature}, true
//	ParseConventional("hello there")                      → {}, false
func ParseConventional(line string) (Conventional, bool) {
	m := conventionalRe.FindStringSubmatch(line)
	if m == nil {
		return Conventional{}, false
	}
	return Conventional{Type: m[1], Scope: m[2], Body: m[3]}, true
}
