package stklos

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
)

// NewPortWriter wraps w so that reply text written as UTF-8 reaches the
// transport in the named encoding. STklos sessions on older terminals
// run Latin-1 ports; everything modern is UTF-8, which passes through
// untouched.
func NewPortWriter(w io.Writer, encoding string) (io.Writer, error) {
	switch encoding {
	case "", "utf-8", "utf8":
		return w, nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewEncoder().Writer(w), nil
	case "windows-1252":
		return charmap.Windows1252.NewEncoder().Writer(w), nil
	}
	return nil, fmt.Errorf("unsupported port encoding %q", encoding)
}

// NewPortReader wraps r so that request text arriving in the named
// encoding is read as UTF-8.
func NewPortReader(r io.Reader, encoding string) (io.Reader, error) {
	switch encoding {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case "windows-1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	}
	return nil, fmt.Errorf("unsupported port encoding %q", encoding)
}
