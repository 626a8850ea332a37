package geiser

import (
	"io"
	"strings"
	"testing"
)

// pipeRW plays the runtime side of a connection: reads come from a
// canned transcript, writes are recorded for inspection.
type pipeRW struct {
	in  *strings.Reader
	out strings.Builder
}

func newPipeRW(transcript string) *pipeRW {
	return &pipeRW{in: strings.NewReader(transcript)}
}

func (p *pipeRW) Read(b []byte) (int, error)  { return p.in.Read(b) }
func (p *pipeRW) Write(b []byte) (int, error) { return p.out.Write(b) }

func TestClientDo(t *testing.T) {
	rw := newPipeRW("((result \"3\") (output . \"\"))\n\nstklos> ")
	c := NewClient(rw, Options{})
	ret, err := c.Do(Command{Verb: "eval", Args: []string{"(+ 1 2)"}})
	if err != nil {
		t.Fatal(err)
	}
	if ret.Failed() || len(ret.Results) != 1 || ret.Results[0] != "3" {
		t.Errorf("Do returned %+v", ret)
	}
	if got := rw.out.String(); got != "(geiser:eval #f '(+ 1 2))\n" {
		t.Errorf("client sent %q", got)
	}
}

func TestClientDoStripsPrompt(t *testing.T) {
	// The prompt shares the reply stream; it must not leak into the
	// parsed text.
	rw := newPipeRW("stklos> ((result \"ok\") (output . \"\"))\n\n")
	c := NewClient(rw, Options{})
	ret, err := c.Do(Command{Verb: "eval", Args: []string{"'ok"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(ret.Results) != 1 || ret.Results[0] != "ok" {
		t.Errorf("Do returned %+v", ret)
	}
}

func TestClientDoEOF(t *testing.T) {
	rw := newPipeRW("")
	c := NewClient(rw, Options{})
	if _, err := c.Do(Command{Verb: "eval", Args: []string{"1"}}); err != io.EOF {
		t.Errorf("Do on a dead connection returned %v, want io.EOF", err)
	}
}

func TestHandshake(t *testing.T) {
	cases := map[string]struct {
		opts Options
		want string
	}{
		"NoLog":   {Options{}, "(newline)\n"},
		"WithLog": {Options{LogFile: "/tmp/g.log"}, "(geiser:start-logging! \"/tmp/g.log\")\n"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			rw := newPipeRW("((result \"#t\") (output . \"\"))\n\n")
			cl := NewClient(rw, c.opts)
			if err := cl.Handshake(); err != nil {
				t.Fatal(err)
			}
			if got := rw.out.String(); got != c.want {
				t.Errorf("handshake sent %q, want %q", got, c.want)
			}
		})
	}
}

func TestCheckVersion(t *testing.T) {
	cases := map[string]struct {
		opts     Options
		reported string
		ok       bool
	}{
		"DefaultPass": {Options{}, "2.10", true},
		"DefaultEdge": {Options{}, "1.30", true},
		"DefaultFail": {Options{}, "1.20", false},
		"CustomFail":  {Options{MinVersion: "2.0"}, "1.30", false},
		"CustomPass":  {Options{MinVersion: "2.0"}, "2.10", true},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			cl := NewClient(newPipeRW(""), c.opts)
			err := cl.CheckVersion(c.reported)
			if (err == nil) != c.ok {
				t.Errorf("CheckVersion(%q) with min %q returned %v", c.reported, c.opts.MinVersion, err)
			}
		})
	}
}

func TestRuntimeVersion(t *testing.T) {
	rw := newPipeRW("((result \"\\\"2.10\\\"\") (output . \"\"))\n\n")
	c := NewClient(rw, Options{})
	v, err := c.RuntimeVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != "2.10" {
		t.Errorf("RuntimeVersion returned %q", v)
	}
	if got := rw.out.String(); got != "(geiser:eval #f '(version))\n" {
		t.Errorf("client sent %q", got)
	}
}

func TestRuntimeVersionError(t *testing.T) {
	rw := newPipeRW("((error (key . \"no version\")))\n\n")
	c := NewClient(rw, Options{})
	if _, err := c.RuntimeVersion(); err == nil {
		t.Error("RuntimeVersion on an error reply did not fail")
	}
}

func TestPromptPattern(t *testing.T) {
	if !PromptPattern.MatchString("stklos> ") {
		t.Error("prompt did not match")
	}
	if PromptPattern.MatchString("  stklos> ") {
		t.Error("prompt matched mid-line")
	}
}
