// Package database provides database helper functions
package database

import (
	"strconv"
	"strings"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
)

// CheckAndLogSlowQuery checks if a query duration exceeds threshold
// and logs it using the slow query channel if it does
func CheckAndLogSlowQuery(logger *logging.ChanneledLogger, query string, duration, threshold time.Duration) {
	if threshold <= 0 {
		return
	}
	if duration > threshold {
		logger.LogSlowQuery(query, duration)
	}
}

// EscapeLike escapes LIKE wildcards so term matches literally. Use with
// ESCAPE '\'.
func EscapeLike(term string) string {
	if !strings.ContainsAny(term, `\%_`) {
		return term
	}
	var b strings.Builder
	b.Grow(len(term) + 4)
	for _, r := range term {
		if r == '\\' || r == '%' || r == '_' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// rebindDollar turns ? placeholders into $1..$n, leaving quoted literals alone.
func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
