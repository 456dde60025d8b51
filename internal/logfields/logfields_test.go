package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"File", KeyFile, "a/b.js", File("a/b.js")},
		{"Target", KeyTarget, "a/b.md", Target("a/b.md")},
		{"Syntax", KeySyntax, "c", Syntax("c")},
		{"Format", KeyFormat, "html", Format("html")},
		{"Stage", KeyStage, "write", Stage("write")},
		{"Pattern", KeyPattern, "vendor", Pattern("vendor")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if got := Count(3).Value.Int64(); got != 3 {
		t.Fatalf("Count: got %d", got)
	}
	if got := Failed(2).Value.Int64(); got != 2 {
		t.Fatalf("Failed: got %d", got)
	}
	if got := Blocks(5).Value.Int64(); got != 5 {
		t.Fatalf("Blocks: got %d", got)
	}
	if got := Duration(1500 * time.Microsecond).Value.Float64(); got != 1.5 {
		t.Fatalf("Duration: got %v", got)
	}
}
