// file.go - Arrays aus Dateien, binär und als Text
package nd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ndkit/ndkit/dtype"
)

// FromFile reads count elements of d from f. An empty separator
// selects binary mode; anything else parses text the way FromString
// does. count < 0 reads to the end of the file.
func FromFile(f io.ReadSeeker, d *dtype.Descr, count int, sep string) (*Array, error) {
	if d == nil {
		d = dtype.MustFromKind(dtype.Float64)
	}
	if d.HasRefs() {
		return nil, fmt.Errorf("%w: cannot read an object array from a file", ErrTypeMismatch)
	}
	if sep == "" {
		return fromBinaryFile(f, d, count)
	}
	return fromTextStream(f, d, count, cleanSeparator(sep))
}

// fromBinaryFile sizes the read by seeking to the end when count is
// open-ended, then reads raw elements in one pass.
func fromBinaryFile(f io.ReadSeeker, d *dtype.Descr, count int) (*Array, error) {
	if d.Elsize == 0 {
		return nil, fmt.Errorf("%w: zero-size element type", ErrInvalidArgument)
	}
	if count < 0 {
		pos, err := f.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		end, err := f.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		if _, err := f.Seek(pos, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		remain := int(end - pos)
		if remain%d.Elsize != 0 {
			slog.Warn("file size is not a multiple of the element size, trailing bytes ignored",
				"remaining", remain, "elsize", d.Elsize)
		}
		count = remain / d.Elsize
	}

	a, err := NewFromDescr(d, []int{count}, false, nil)
	if err != nil {
		return nil, err
	}
	n, err := io.ReadFull(f, a.data[:count*d.Elsize])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		a.Release()
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	nread := n / d.Elsize
	if nread < count {
		slog.Warn("fewer elements read than requested", "requested", count, "read", nread)
		out, err := NewFromDescr(d, []int{nread}, false, nil)
		if err != nil {
			a.Release()
			return nil, err
		}
		copy(out.data, a.data[:nread*d.Elsize])
		a.Release()
		return out, nil
	}
	return a, nil
}
