// text.go - Konstruktion aus Text mit Separator-Logik
package nd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ndkit/ndkit/dtype"
	"github.com/ndkit/ndkit/envconfig"
)

// cleanSeparator collapses runs of whitespace inside sep into single
// spaces and trims the ends. A space in the cleaned separator then
// stands for one or more whitespace characters in the input; leading
// and trailing whitespace around every separator is always skipped.
func cleanSeparator(sep string) string {
	return strings.Join(strings.Fields(sep), " ")
}

// skipSeparatorString consumes one separator from the cursor. A
// mismatch or end of input is a clean stop, not an error.
func skipSeparatorString(c *dtype.TextCursor, sep string) bool {
	c.SkipSpace()
	for i := 0; i < len(sep); i++ {
		b, ok := c.Peek()
		if sep[i] == ' ' {
			// At least one whitespace character required.
			if !ok || !isAnySpace(b) {
				return false
			}
			c.SkipSpace()
			continue
		}
		if !ok || b != sep[i] {
			return false
		}
		c.Advance()
	}
	c.SkipSpace()
	return !c.EOF()
}

// skipSeparatorStream is skipSeparatorString over a buffered reader.
// The first byte after the separator is left unread.
func skipSeparatorStream(r *bufio.Reader, sep string) bool {
	if !skipStreamSpace(r) {
		return false
	}
	for i := 0; i < len(sep); i++ {
		if sep[i] == ' ' {
			b, err := r.ReadByte()
			if err != nil {
				return false
			}
			if !isAnySpace(b) {
				r.UnreadByte()
				return false
			}
			if !skipStreamSpace(r) {
				return false
			}
			continue
		}
		b, err := r.ReadByte()
		if err != nil {
			return false
		}
		if b != sep[i] {
			r.UnreadByte()
			return false
		}
	}
	return skipStreamSpace(r)
}

// skipStreamSpace eats whitespace and reports whether more input
// follows.
func skipStreamSpace(r *bufio.Reader) bool {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return false
		}
		if !isAnySpace(b) {
			r.UnreadByte()
			return true
		}
	}
}

func isAnySpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// FromString parses elements of d out of s. An empty separator means
// binary mode, interpreting the string's raw bytes. count < 0 reads
// until the input is exhausted.
func FromString(s string, d *dtype.Descr, count int, sep string) (*Array, error) {
	if d == nil {
		d = dtype.MustFromKind(dtype.Float64)
	}
	// An empty separator selects binary mode; a whitespace-only one
	// separates on whitespace.
	if sep == "" {
		return FromBytes([]byte(s), d, count)
	}
	sep = cleanSeparator(sep)
	if !d.ScanText() {
		return nil, fmt.Errorf("%w: element type %s cannot be parsed from text", ErrTypeMismatch, d)
	}
	c := dtype.NewTextCursor(s, len(s))
	next := func(p []byte) (bool, error) {
		if c.EOF() {
			return false, nil
		}
		if err := d.ParseText(c, p); err != nil {
			return false, nil
		}
		return true, skipNext(c, sep)
	}
	return fromText(d, count, next)
}

func skipNext(c *dtype.TextCursor, sep string) error {
	if !skipSeparatorString(c, sep) {
		// Force EOF so the caller stops cleanly.
		c.Pos = c.End
	}
	return nil
}

// fromText drives chunked element reading shared by the string and
// file paths. next parses one element into p and reports whether it
// produced one; parse failures are clean stops.
func fromText(d *dtype.Descr, count int, next func(p []byte) (bool, error)) (*Array, error) {
	elsize := d.Elsize
	chunk := envconfig.TextBuffer()
	if count >= 0 {
		chunk = count
	}
	if chunk < 1 {
		chunk = 1
	}

	buf := make([]byte, chunk*elsize)
	nread := 0
	for count < 0 || nread < count {
		if nread == chunk {
			if count >= 0 {
				break
			}
			grown := make([]byte, (chunk+envconfig.TextBuffer())*elsize)
			copy(grown, buf)
			buf = grown
			chunk += envconfig.TextBuffer()
		}
		ok, err := next(buf[nread*elsize : (nread+1)*elsize])
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		nread++
	}
	if count >= 0 && nread < count {
		slog.Warn("fewer elements read than requested", "requested", count, "read", nread)
	}

	a, err := NewFromDescr(d, []int{nread}, false, nil)
	if err != nil {
		return nil, err
	}
	copy(a.data, buf[:nread*elsize])
	return a, nil
}

// fromTextStream reads elements of d from r until count is reached or
// the input stops matching.
func fromTextStream(r io.Reader, d *dtype.Descr, count int, sep string) (*Array, error) {
	if !d.ScanText() {
		return nil, fmt.Errorf("%w: element type %s cannot be parsed from text", ErrTypeMismatch, d)
	}
	br := bufio.NewReader(r)
	stopped := false
	next := func(p []byte) (bool, error) {
		if stopped {
			return false, nil
		}
		if err := d.ScanStream(br, p); err != nil {
			// EOF and parse failures both end the read cleanly.
			return false, nil
		}
		if !skipSeparatorStream(br, sep) {
			stopped = true
		}
		return true, nil
	}
	return fromText(d, count, next)
}
