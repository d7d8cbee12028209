package query

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// CommitPolicy decides whether a statement's transaction is committed.
type CommitPolicy int

const (
	// CommitWrites commits statements that modify data or schema and rolls
	// back everything else.
	CommitWrites CommitPolicy = iota
	// CommitAlways commits every statement, read-only or not.
	CommitAlways
)

// ParseCommitPolicy accepts "writes" or "always".
func ParseCommitPolicy(s string) (CommitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "writes":
		return CommitWrites, nil
	case "always":
		return CommitAlways, nil
	default:
		return CommitWrites, fmt.Errorf("unknown commit policy %q (want writes or always)", s)
	}
}

func (p CommitPolicy) String() string {
	if p == CommitAlways {
		return "always"
	}
	return "writes"
}

func (p CommitPolicy) commits(sql string) bool {
	return p == CommitAlways || Mutates(sql)
}

var readVerbs = map[string]bool{
	"SELECT":  true,
	"VALUES":  true,
	"TABLE":   true,
	"SHOW":    true,
	"EXPLAIN": true,
}

var writeVerbs = map[string]bool{
	"INSERT": true,
	"UPDATE": true,
	"DELETE": true,
	"MERGE":  true,
}

// explainable are the verbs that may follow EXPLAIN and its options.
var explainable = map[string]bool{
	"SELECT":  true,
	"VALUES":  true,
	"TABLE":   true,
	"WITH":    true,
	"INSERT":  true,
	"UPDATE":  true,
	"DELETE":  true,
	"MERGE":   true,
	"CREATE":  true,
	"EXECUTE": true,
	"DECLARE": true,
}

// Mutates reports whether sql may change data or schema. Leading comments
// and parentheses are skipped. A SELECT mutates when it has an INTO clause,
// a WITH query when any of its words is INTO or a data-modifying verb, and
// EXPLAIN ANALYZE when the statement it runs does. Unknown verbs count as
// mutating.
func Mutates(sql string) bool {
	return mutates(sqlWords(sql))
}

func mutates(words []string) bool {
	if len(words) == 0 {
		return false
	}
	switch verb := words[0]; {
	case verb == "EXPLAIN":
		analyze := false
		for i, w := range words[1:] {
			if w == "ANALYZE" {
				analyze = true
			}
			if explainable[w] {
				return analyze && mutates(words[i+1:])
			}
		}
		return false
	case verb == "WITH":
		for _, w := range words[1:] {
			if writeVerbs[w] || w == "INTO" {
				return true
			}
		}
		return false
	case readVerbs[verb]:
		return slices.Contains(words[1:], "INTO")
	default:
		return true
	}
}

// sqlWords returns the upper-cased bare words of sql, skipping comments and
// quoted text.
func sqlWords(sql string) []string {
	var (
		words []string
		cur   strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToUpper(cur.String()))
			cur.Reset()
		}
	}

	rs := []rune(sql)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '-' && i+1 < len(rs) && rs[i+1] == '-':
			flush()
			for i < len(rs) && rs[i] != '\n' {
				i++
			}
		case r == '/' && i+1 < len(rs) && rs[i+1] == '*':
			flush()
			i += 2
			for i+1 < len(rs) && !(rs[i] == '*' && rs[i+1] == '/') {
				i++
			}
			i++
		case r == '\'' || r == '"':
			flush()
			q := r
			i++
			for i < len(rs) && rs[i] != q {
				i++
			}
		case unicode.IsLetter(r) || r == '_':
			cur.WriteRune(r)
		case unicode.IsDigit(r) && cur.Len() > 0:
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return words
}
