package dbprofile

import (
	"strconv"
	"strings"
)

// RebindPositional rewrites ? placeholders as prefix+N (e.g. $1, :1), leaving
// quoted literals untouched. Backends whose drivers accept ? directly pass
// queries through unchanged and never call this.
func RebindPositional(query, prefix string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inSingle := false
	inDouble := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'' && !inDouble:
			inSingle = !inSingle
			b.WriteByte(ch)
		case ch == '"' && !inSingle:
			inDouble = !inDouble
			b.WriteByte(ch)
		case ch == '?' && !inSingle && !inDouble:
			n++
			b.WriteString(prefix)
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
