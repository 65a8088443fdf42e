// text.go - Text-Parsing von Elementen aus Strings und Streams
// Dieses Modul enthaelt ParseText (String-Cursor) und ScanStream
// (Byte-Stream) fuer numerische Element-Typen.
package dtype

import (
	"fmt"
	"io"
	"strconv"
)

// TextCursor walks a string during text parsing. End marks one past
// the last readable byte; Pos advances as elements and separators are
// consumed.
type TextCursor struct {
	Data string
	Pos  int
	End  int
}

// NewTextCursor builds a cursor over data. A negative limit means the
// whole string is readable.
func NewTextCursor(data string, limit int) *TextCursor {
	end := len(data)
	if limit >= 0 && limit < end {
		end = limit
	}
	return &TextCursor{Data: data, End: end}
}

// EOF reports whether the cursor is exhausted.
func (c *TextCursor) EOF() bool {
	return c.Pos >= c.End
}

// Peek returns the next byte without consuming it.
func (c *TextCursor) Peek() (byte, bool) {
	if c.EOF() {
		return 0, false
	}
	return c.Data[c.Pos], true
}

// SkipSpace advances past any whitespace.
func (c *TextCursor) SkipSpace() {
	for !c.EOF() && isSpace(c.Data[c.Pos]) {
		c.Pos++
	}
}

// Advance consumes one byte.
func (c *TextCursor) Advance() {
	if !c.EOF() {
		c.Pos++
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
}

func numberByte(b byte, float bool) bool {
	if b >= '0' && b <= '9' || b == '+' || b == '-' {
		return true
	}
	if float {
		return b == '.' || b == 'e' || b == 'E'
	}
	return false
}

// ScanText reports whether d can parse elements from text input.
func (d *Descr) ScanText() bool {
	switch {
	case d.Kind == Bool, d.Kind.IsInteger(), d.Kind.IsFloat():
		return d.Subarray == nil
	}
	return false
}

// ParseText parses one element from the cursor into p. A parse
// failure leaves an error; the caller treats it as end of input.
func (d *Descr) ParseText(c *TextCursor, p []byte) error {
	if !d.ScanText() {
		return fmt.Errorf("dtype: cannot parse text into %s", d)
	}
	for !c.EOF() && isSpace(c.Data[c.Pos]) {
		c.Pos++
	}
	start := c.Pos
	float := !d.Kind.IsInteger() && d.Kind != Bool
	for !c.EOF() && numberByte(c.Data[c.Pos], float) {
		c.Pos++
	}
	if c.Pos == start {
		return fmt.Errorf("dtype: no %s element at position %d", d.Kind, start)
	}
	return d.setFromToken(c.Data[start:c.Pos], p)
}

// ScanStream parses one element from a byte stream into p. The first
// byte that cannot extend the element is unread so separator matching
// can see it.
func (d *Descr) ScanStream(r io.ByteScanner, p []byte) error {
	if !d.ScanText() {
		return fmt.Errorf("dtype: cannot scan a stream into %s", d)
	}
	var b byte
	var err error
	for {
		b, err = r.ReadByte()
		if err != nil {
			return err
		}
		if !isSpace(b) {
			break
		}
	}

	float := !d.Kind.IsInteger() && d.Kind != Bool
	tok := make([]byte, 0, 32)
	for numberByte(b, float) {
		tok = append(tok, b)
		b, err = r.ReadByte()
		if err == io.EOF {
			b = 0
			break
		}
		if err != nil {
			return err
		}
	}
	if err == nil {
		if uerr := r.UnreadByte(); uerr != nil {
			return uerr
		}
	}
	if len(tok) == 0 {
		return fmt.Errorf("dtype: no %s element in stream", d.Kind)
	}
	return d.setFromToken(string(tok), p)
}

func (d *Descr) setFromToken(tok string, p []byte) error {
	switch {
	case d.Kind == Bool:
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return fmt.Errorf("dtype: bad bool literal %q: %w", tok, err)
		}
		return d.SetItem(n != 0, p)
	case d.Kind.IsInteger():
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return fmt.Errorf("dtype: bad integer literal %q: %w", tok, err)
		}
		return d.SetItem(n, p)
	default:
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("dtype: bad float literal %q: %w", tok, err)
		}
		return d.SetItem(f, p)
	}
}
