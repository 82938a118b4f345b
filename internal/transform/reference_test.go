package transform

import (
	"math"
	"strconv"
	"testing"
)

func TestReplaceReferences(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		current int32
		want    string
		count   int
	}{
		{name: "minus", text: "see (cur-1)", current: 2, want: "see (1)", count: 1},
		{name: "plus", text: "then (cur+1)", current: 2, want: "then (3)", count: 1},
		{name: "zero offset", text: "(cur+0)", current: 4, want: "(4)", count: 1},
		{name: "negative result", text: "(cur-10)", current: 3, want: "(-7)", count: 1},
		{name: "multiple", text: "(cur-1) and (cur+1)", current: 2, want: "(1) and (3)", count: 2},
		{name: "no sign", text: "(cur1)", current: 2, want: "(cur1)"},
		{name: "no digits", text: "(cur-)", current: 2, want: "(cur-)"},
		{name: "unclosed", text: "(cur-1", current: 2, want: "(cur-1"},
		{name: "spaces", text: "(cur - 1)", current: 2, want: "(cur - 1)"},
		{name: "uppercase", text: "(CUR-1)", current: 2, want: "(CUR-1)"},
		{name: "nested prefix", text: "(cur(cur-1)", current: 2, want: "(cur(1)", count: 1},
		{name: "adjacent", text: "(cur-1)(cur-1)", current: 3, want: "(2)(2)", count: 2},
		{name: "plain text", text: "nothing here", current: 1, want: "nothing here"},
		{name: "overflowing offset", text: "(cur+99999999999999999999)", current: 1, want: "(cur+99999999999999999999)"},
		{name: "offset just past int32", text: "see (cur+2147483648)", current: 2, want: "see (cur+2147483648)"},
		{name: "offset beyond int32", text: "see (cur+3000000000)", current: 2, want: "see (cur+3000000000)"},
		{name: "negative offset past int32", text: "(cur-2147483649)", current: 1, want: "(cur-2147483649)"},
		{name: "largest int32 offset", text: "(cur+2147483647)", current: 0, want: "(2147483647)", count: 1},
		{name: "multibyte neighbours", text: "→(cur-1)←", current: 5, want: "→(4)←", count: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, count := ReplaceReferences(tc.text, tc.current)
			if got != tc.want {
				t.Fatalf("ReplaceReferences(%q, %d) = %q, want %q", tc.text, tc.current, got, tc.want)
			}
			if count != tc.count {
				t.Fatalf("expected %d replacements, got %d", tc.count, count)
			}
		})
	}
}

func TestReplaceReferencesWrapsOnOverflow(t *testing.T) {
	got, count := ReplaceReferences("(cur+2147483647)", 1)
	if count != 1 {
		t.Fatalf("expected one replacement, got %d", count)
	}
	if want := "(" + strconv.FormatInt(math.MinInt32, 10) + ")"; got != want {
		t.Fatalf("expected wrapped result %q, got %q", want, got)
	}
}
