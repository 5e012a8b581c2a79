// Package dburl reads and adjusts Postgres connection strings in either URL
// form (postgres://u:p@host/db?k=v) or key=value form (host=x dbname=db).
package dburl

import (
	"net/url"
	"strings"
)

// BinaryResultParam turns off binary results for prepared statements, which
// PgBouncer in transaction mode cannot route.
const BinaryResultParam = "disable_prepared_binary_result"

func isURL(raw string) (*url.URL, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return nil, false
	}
	return parsed, true
}

// keyValues splits a key=value DSN. Quoted values keep their spaces.
func keyValues(raw string) map[string]string {
	out := make(map[string]string)
	for len(raw) > 0 {
		raw = strings.TrimLeft(raw, " \t\n")
		key, rest, ok := strings.Cut(raw, "=")
		if !ok {
			break
		}
		var value string
		if strings.HasPrefix(rest, "'") {
			end := strings.Index(rest[1:], "'")
			if end < 0 {
				value, raw = rest[1:], ""
			} else {
				value, raw = rest[1:end+1], rest[end+2:]
			}
		} else {
			value, raw, _ = strings.Cut(rest, " ")
		}
		out[strings.TrimSpace(key)] = strings.Trim(value, `"`)
	}
	return out
}

// WithBinaryResultsDisabled sets BinaryResultParam=yes unless the string
// already carries a value for it. Unparseable input is returned as is.
func WithBinaryResultsDisabled(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}

	if parsed, ok := isURL(raw); ok {
		query := parsed.Query()
		if query.Get(BinaryResultParam) != "" {
			return raw
		}
		query.Set(BinaryResultParam, "yes")
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	if _, exists := keyValues(raw)[BinaryResultParam]; exists || !strings.Contains(raw, "=") {
		return raw
	}
	return raw + " " + BinaryResultParam + "=yes"
}

// Name returns the database name, or "" when the string names none.
func Name(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, ok := isURL(raw); ok {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}
	return strings.TrimSpace(keyValues(raw)["dbname"])
}
