// Package mapper defines the contract between the normalization orchestrator
// and the per-provider field mappers. Mappers are pure row transforms: they
// never touch storage and never resolve prices or hierarchy entities.
package mapper

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one row from a provider's raw billing table, keyed by column
// name. Raw schemas are provider-native and outside this engine's control, so
// every accessor tolerates missing columns and NULL values.
type RawRecord struct {
	Columns map[string]interface{}
}

// Has reports whether a column is present and non-NULL
func (r RawRecord) Has(key string) bool {
	v, ok := r.Columns[key]
	return ok && v != nil
}

// Str returns a column value as string
func (r RawRecord) Str(key string) string {
	switch v := r.Columns[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

// StrOr returns a column value as string, or a fallback when absent
func (r RawRecord) StrOr(key, fallback string) string {
	if s := r.Str(key); s != "" {
		return s
	}
	return fallback
}

// FirstStr returns the first non-empty string among the given columns
func (r RawRecord) FirstStr(keys ...string) string {
	for _, k := range keys {
		if s := r.Str(k); s != "" {
			return s
		}
	}
	return ""
}

// Bool returns a column value as bool. SQLite hands booleans back as
// integers, so numeric forms are accepted.
func (r RawRecord) Bool(key string) bool {
	switch v := r.Columns[key].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return strings.EqualFold(v, "true") || v == "1"
	}
	return false
}

// Dec returns a column value as decimal, zero when absent or malformed
func (r RawRecord) Dec(key string) decimal.Decimal {
	d, _ := r.DecOK(key)
	return d
}

// DecOK returns a column value as decimal and whether a usable value was
// present
func (r RawRecord) DecOK(key string) (decimal.Decimal, bool) {
	switch v := r.Columns[key].(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case int64:
		return decimal.NewFromInt(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case string:
		if v == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}

// Time returns a column value as UTC time. String columns are parsed as
// RFC 3339, the SQLite datetime form, or a bare date.
func (r RawRecord) Time(key string) time.Time {
	switch v := r.Columns[key].(type) {
	case time.Time:
		return v.UTC()
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UTC()
			}
		}
	case []byte:
		return RawRecord{Columns: map[string]interface{}{key: string(v)}}.Time(key)
	}
	return time.Time{}
}

// Tags returns a column value as a string-keyed tag map. Accepts a native
// map or a JSON object serialized to TEXT, which is how the raw tables store
// labels.
func (r RawRecord) Tags(key string) map[string]string {
	switch v := r.Columns[key].(type) {
	case map[string]string:
		return v
	case map[string]interface{}:
		out := make(map[string]string, len(v))
		for k, val := range v {
			if s, ok := val.(string); ok {
				out[k] = s
			}
		}
		return out
	case string:
		return parseTagJSON(v)
	case []byte:
		return parseTagJSON(string(v))
	}
	return nil
}

func parseTagJSON(s string) map[string]string {
	if s == "" {
		return nil
	}
	var generic map[string]interface{}
	if err := json.Unmarshal([]byte(s), &generic); err != nil {
		return nil
	}
	out := make(map[string]string, len(generic))
	for k, val := range generic {
		switch t := val.(type) {
		case string:
			out[k] = t
		case json.Number:
			out[k] = t.String()
		case float64:
			out[k] = decimal.NewFromFloat(t).String()
		}
	}
	return out
}
