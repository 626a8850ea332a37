package main

import (
	"strings"
	"testing"

	"github.com/geisertalk/stklos"
)

func TestServe(t *testing.T) {
	in := strings.NewReader("(+ 1 2)\n(car '(a b))\n")
	out := strings.Builder{}
	if err := serve(stklos.NewVM(), in, &out, true); err != nil {
		t.Fatal(err)
	}
	want := "stklos> " +
		"((result \"3\") (output . \"\"))\n\n" +
		"stklos> " +
		"((result \"a\") (output . \"\"))\n\n" +
		"stklos> "
	if out.String() != want {
		t.Errorf("serve wrote %q, want %q", out.String(), want)
	}
}

func TestServeNoPrompt(t *testing.T) {
	in := strings.NewReader("(* 2 3)\n")
	out := strings.Builder{}
	if err := serve(stklos.NewVM(), in, &out, false); err != nil {
		t.Fatal(err)
	}
	if want := "((result \"6\") (output . \"\"))\n\n"; out.String() != want {
		t.Errorf("serve wrote %q, want %q", out.String(), want)
	}
}

func TestServeErrors(t *testing.T) {
	// An unreadable request and an evaluation error both produce error
	// structures; neither ends the loop.
	in := strings.NewReader("(+ 1\nnope\n(+ 1 1)\n")
	out := strings.Builder{}
	if err := serve(stklos.NewVM(), in, &out, false); err != nil {
		t.Fatal(err)
	}
	replies := strings.Split(strings.TrimSuffix(out.String(), "\n\n"), "\n\n")
	if len(replies) != 3 {
		t.Fatalf("got %d replies: %q", len(replies), out.String())
	}
	for i, r := range replies[:2] {
		if !strings.HasPrefix(r, "((error ") {
			t.Errorf("reply %d is %q, want an error structure", i, r)
		}
	}
	if want := `((result "2") (output . ""))`; replies[2] != want {
		t.Errorf("reply 3 is %q, want %q", replies[2], want)
	}
}

func TestServeSkipsBlankLines(t *testing.T) {
	in := strings.NewReader("\n   \n42\n")
	out := strings.Builder{}
	if err := serve(stklos.NewVM(), in, &out, false); err != nil {
		t.Fatal(err)
	}
	if want := "((result \"42\") (output . \"\"))\n\n"; out.String() != want {
		t.Errorf("serve wrote %q, want %q", out.String(), want)
	}
}
