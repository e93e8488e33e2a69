package mapper

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRawRecordStr(t *testing.T) {
	raw := RawRecord{Columns: map[string]interface{}{
		"text":  "hello",
		"bytes": []byte("world"),
		"nope":  nil,
	}}

	if got := raw.Str("text"); got != "hello" {
		t.Errorf("Str(text) = %q", got)
	}
	if got := raw.Str("bytes"); got != "world" {
		t.Errorf("Str(bytes) = %q", got)
	}
	if got := raw.Str("nope"); got != "" {
		t.Errorf("Str(nope) = %q, want empty", got)
	}
	if got := raw.StrOr("missing", "fallback"); got != "fallback" {
		t.Errorf("StrOr(missing) = %q", got)
	}
	if got := raw.FirstStr("nope", "missing", "text"); got != "hello" {
		t.Errorf("FirstStr = %q", got)
	}
}

func TestRawRecordDec(t *testing.T) {
	raw := RawRecord{Columns: map[string]interface{}{
		"text_num": "12.3456789012345678",
		"float":    float64(2.5),
		"int":      int64(7),
		"garbage":  "not-a-number",
		"empty":    "",
	}}

	// Text decimals keep full precision.
	want, _ := decimal.NewFromString("12.3456789012345678")
	if got := raw.Dec("text_num"); !got.Equal(want) {
		t.Errorf("Dec(text_num) = %s", got)
	}
	if got := raw.Dec("float"); !got.Equal(decimal.NewFromFloat(2.5)) {
		t.Errorf("Dec(float) = %s", got)
	}
	if got := raw.Dec("int"); !got.Equal(decimal.NewFromInt(7)) {
		t.Errorf("Dec(int) = %s", got)
	}
	if _, ok := raw.DecOK("garbage"); ok {
		t.Error("DecOK(garbage) reported a usable value")
	}
	if _, ok := raw.DecOK("empty"); ok {
		t.Error("DecOK(empty) reported a usable value")
	}
	if _, ok := raw.DecOK("missing"); ok {
		t.Error("DecOK(missing) reported a usable value")
	}
}

func TestRawRecordBool(t *testing.T) {
	raw := RawRecord{Columns: map[string]interface{}{
		"native": true,
		"int":    int64(1),
		"text":   "true",
		"digit":  "1",
		"off":    "false",
	}}

	for _, key := range []string{"native", "int", "text", "digit"} {
		if !raw.Bool(key) {
			t.Errorf("Bool(%s) = false, want true", key)
		}
	}
	if raw.Bool("off") || raw.Bool("missing") {
		t.Error("expected false for off and missing")
	}
}

func TestRawRecordTime(t *testing.T) {
	raw := RawRecord{Columns: map[string]interface{}{
		"rfc3339":  "2026-01-15T10:30:00Z",
		"datetime": "2026-01-15 10:30:00",
		"date":     "2026-01-15",
		"native":   time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		"garbage":  "yesterday",
	}}

	want := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	for _, key := range []string{"rfc3339", "datetime", "native"} {
		if got := raw.Time(key); !got.Equal(want) {
			t.Errorf("Time(%s) = %v, want %v", key, got, want)
		}
	}
	if got := raw.Time("date"); !got.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Time(date) = %v", got)
	}
	if got := raw.Time("garbage"); !got.IsZero() {
		t.Errorf("Time(garbage) = %v, want zero", got)
	}
}

func TestRawRecordTags(t *testing.T) {
	raw := RawRecord{Columns: map[string]interface{}{
		"json":    `{"team":"payments","cost_center":"cc-42"}`,
		"native":  map[string]string{"env": "prod"},
		"garbage": "{not json",
		"empty":   "",
	}}

	tags := raw.Tags("json")
	if tags["team"] != "payments" || tags["cost_center"] != "cc-42" {
		t.Errorf("Tags(json) = %v", tags)
	}
	if got := raw.Tags("native"); got["env"] != "prod" {
		t.Errorf("Tags(native) = %v", got)
	}
	if got := raw.Tags("garbage"); got != nil {
		t.Errorf("Tags(garbage) = %v, want nil", got)
	}
	if got := raw.Tags("empty"); got != nil {
		t.Errorf("Tags(empty) = %v, want nil", got)
	}
}
