package app

import (
	"net/url"
	"regexp"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// postgresDSN is a lib/pq connection string in URL or key=value form.
type postgresDSN string

// textResults asks lib/pq to skip binary results for prepared statements,
// unless the DSN already sets the parameter.
func (d postgresDSN) textResults(enabled bool) string {
	raw := strings.TrimSpace(string(d))
	if !enabled || raw == "" {
		return raw
	}

	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		q := u.Query()
		if q.Get(preparedBinaryParam) != "" {
			return raw
		}
		q.Set(preparedBinaryParam, "yes")
		u.RawQuery = q.Encode()
		return u.String()
	}

	if _, ok := d.keyword(preparedBinaryParam); ok {
		return raw
	}
	return raw + " " + preparedBinaryParam + "=yes"
}

// database returns the database name, or "" when the DSN has none.
func (d postgresDSN) database() string {
	raw := strings.TrimSpace(string(d))
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		return strings.TrimPrefix(u.Path, "/")
	}
	name, _ := d.keyword("dbname")
	return name
}

func (d postgresDSN) keyword(key string) (string, bool) {
	for _, field := range strings.Fields(string(d)) {
		k, v, ok := strings.Cut(field, "=")
		if ok && k == key {
			return strings.Trim(v, `"'`), true
		}
	}
	return "", false
}

const maxTracedQueryLength = 512

var sqlWhitespace = regexp.MustCompile(`\s+`)

// traceQuery collapses whitespace and caps the statement recorded on db spans.
func traceQuery(query string) string {
	q := strings.TrimSpace(sqlWhitespace.ReplaceAllString(query, " "))
	if len(q) > maxTracedQueryLength {
		return q[:maxTracedQueryLength] + "..."
	}
	return q
}
