package geiser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/geisertalk/stklos"
)

// PromptPattern recognizes the runtime's REPL prompt. The connection
// manager uses it to know when the process is ready for a request.
var PromptPattern = regexp.MustCompile(`^stklos> `)

// FileExtensions are the source suffixes routed to this runtime. Both
// load through the same mechanism.
var FileExtensions = []string{".stk", ".scm"}

// DefaultMinVersion is the oldest runtime version the client will talk
// to.
const DefaultMinVersion = "1.30"

// Options configures a Client.
type Options struct {
	// LogFile, when set, makes the startup handshake enable the
	// runtime-side protocol log at this path.
	LogFile string
	// MinVersion overrides DefaultMinVersion for the version gate.
	MinVersion string
}

// A Client drives one synchronous connection to the runtime. It owns
// neither the process nor the transport: the surrounding connection
// manager spawns the runtime and hands the byte stream here. One
// request is in flight at a time; Do blocks until the terminating blank
// line of the reply has been read.
type Client struct {
	r    *bufio.Reader
	w    io.Writer
	opts Options
}

// NewClient wraps an established connection.
func NewClient(rw io.ReadWriter, opts Options) *Client {
	if opts.MinVersion == "" {
		opts.MinVersion = DefaultMinVersion
	}
	return &Client{r: bufio.NewReader(rw), w: rw, opts: opts}
}

// Handshake sends the startup expression: the log-enabling form when a
// log file is configured, a bare (newline) otherwise. The reply is
// drained and discarded.
func (c *Client) Handshake() error {
	expr := "(newline)"
	if c.opts.LogFile != "" {
		expr = Command{Verb: "start-logging!", Args: []string{schemeString(c.opts.LogFile)}}.Expression()
	}
	if _, err := fmt.Fprintf(c.w, "%s\n", expr); err != nil {
		return err
	}
	_, err := c.readReply()
	return err
}

// CheckVersion gates the connection on the runtime's reported version
// string, refusing anything below the configured minimum.
func (c *Client) CheckVersion(reported string) error {
	if !stklos.VersionAtLeast(reported, c.opts.MinVersion) {
		return fmt.Errorf("stklos %s is too old; need at least %s", reported, c.opts.MinVersion)
	}
	return nil
}

// RuntimeVersion asks the runtime for its version string.
func (c *Client) RuntimeVersion() (string, error) {
	ret, err := c.Do(Command{Verb: "eval", Args: []string{"(version)"}})
	if err != nil {
		return "", err
	}
	if ret.Failed() {
		return "", fmt.Errorf("version query failed: %s", ret.Err)
	}
	if len(ret.Results) == 0 {
		return "", fmt.Errorf("version query returned nothing")
	}
	// The result is the printed form of a string.
	exprs, err := stklos.ParseString(ret.Results[0])
	if err != nil || len(exprs) != 1 {
		return "", fmt.Errorf("unreadable version %q", ret.Results[0])
	}
	s, ok := exprs[0].(string)
	if !ok {
		return "", fmt.Errorf("unreadable version %q", ret.Results[0])
	}
	return s, nil
}

// Do sends one command and blocks until its reply is complete.
func (c *Client) Do(cmd Command) (Retort, error) {
	if _, err := fmt.Fprintf(c.w, "%s\n", cmd.Expression()); err != nil {
		return Retort{}, err
	}
	text, err := c.readReply()
	if err != nil {
		return Retort{}, err
	}
	return ParseRetort(text)
}

// readReply accumulates reply lines until the blank line terminator.
// Prompt text at the start of a line is stripped, since the runtime
// prints its prompt on the same stream.
func (c *Client) readReply() (string, error) {
	b := strings.Builder{}
	for {
		line, err := c.r.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		trimmed = PromptPattern.ReplaceAllString(trimmed, "")
		if trimmed == "" {
			if b.Len() > 0 {
				return b.String(), nil
			}
			if err != nil {
				return "", err
			}
			continue
		}
		b.WriteString(trimmed)
		b.WriteByte('\n')
		if err != nil {
			if err == io.EOF {
				return b.String(), nil
			}
			return b.String(), err
		}
	}
}
