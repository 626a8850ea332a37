package geiser

import (
	"reflect"
	"testing"
)

// TestParseRetort tests reply parsing across the envelope shapes the
// runtime produces.
func TestParseRetort(t *testing.T) {
	cases := map[string]struct {
		text string
		want Retort
	}{
		"SingleResult": {
			`((result "3") (output . ""))`,
			Retort{Results: []string{"3"}},
		},
		"MultipleValues": {
			`((result "1" "2" "3") (output . "OK"))`,
			Retort{Results: []string{"1", "2", "3"}, Output: "OK"},
		},
		"OutputOnly": {
			`((result "hi") (output . "hi"))`,
			Retort{Results: []string{"hi"}, Output: "hi"},
		},
		"EmptyStrings": {
			`((result "") (output . ""))`,
			Retort{Results: []string{""}},
		},
		"Error": {
			`((error (key . "unbound variable: nope")))`,
			Retort{Err: "unbound variable: nope"},
		},
		"ErrorNoMessage": {
			`((error))`,
			Retort{Err: "unknown error"},
		},
		"UnknownTagsIgnored": {
			`((future . 1) (result "9") (output . ""))`,
			Retort{Results: []string{"9"}},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseRetort(c.text)
			if err != nil {
				t.Fatalf("ParseRetort(%q) failed: %v", c.text, err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("ParseRetort(%q) = %+v, want %+v", c.text, got, c.want)
			}
		})
	}
}

// TestParseRetortRejects tests the malformed cases.
func TestParseRetortRejects(t *testing.T) {
	cases := map[string]string{
		"Unreadable":    `((result "unterminated`,
		"NotAList":      `42`,
		"TwoExprs":      `(a) (b)`,
		"Empty":         ``,
		"NoResultField": `((output . "x"))`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseRetort(text); err == nil {
				t.Errorf("ParseRetort(%q) did not fail", text)
			}
		})
	}
}

// TestRetortFailed tests the error predicate.
func TestRetortFailed(t *testing.T) {
	if (Retort{Results: []string{"1"}}).Failed() {
		t.Error("success retort reported failure")
	}
	if !(Retort{Err: "boom"}).Failed() {
		t.Error("error retort did not report failure")
	}
}
