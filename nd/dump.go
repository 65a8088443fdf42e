// dump.go - Dump-Funktionen fuer Array-Debugging und Visualisierung
// Dieses Modul stellt Hilfsfunktionen zum Ausgeben von Array-Inhalten bereit.
package nd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ndkit/ndkit/dtype"
)

// DumpOptions configures array dump output format.
type DumpOptions func(*dumpOptions)

// DumpWithPrecision sets the number of decimal places to print. Applies to float elements.
func DumpWithPrecision(n int) DumpOptions {
	return func(opts *dumpOptions) {
		opts.Precision = n
	}
}

// DumpWithThreshold sets the threshold for printing the entire array. If the number of elements
// is less than or equal to this value, the entire array will be printed. Otherwise, only the
// beginning and end of each dimension will be printed.
func DumpWithThreshold(n int) DumpOptions {
	return func(opts *dumpOptions) {
		opts.Threshold = n
	}
}

// DumpWithEdgeItems sets the number of elements to print at the beginning and end of each dimension.
func DumpWithEdgeItems(n int) DumpOptions {
	return func(opts *dumpOptions) {
		opts.EdgeItems = n
	}
}

type dumpOptions struct {
	Precision, Threshold, EdgeItems int
}

// Dump converts an array to a human-readable string representation.
func Dump(a *Array, optsFuncs ...DumpOptions) string {
	opts := dumpOptions{Precision: 4, Threshold: 1000, EdgeItems: 3}
	for _, optsFunc := range optsFuncs {
		optsFunc(&opts)
	}
	if a.Len() <= opts.Threshold {
		opts.EdgeItems = math.MaxInt
	}

	format := func(v any) string {
		switch t := v.(type) {
		case float64:
			return strconv.FormatFloat(t, 'f', opts.Precision, 64)
		case int64:
			return strconv.FormatInt(t, 10)
		case uint64:
			return strconv.FormatUint(t, 10)
		case complex128:
			return fmt.Sprintf("(%s%+si)",
				strconv.FormatFloat(real(t), 'f', opts.Precision, 64),
				strconv.FormatFloat(imag(t), 'f', opts.Precision, 64))
		case bool:
			if t {
				return "true"
			}
			return "false"
		case string:
			return strconv.Quote(t)
		}
		return fmt.Sprint(v)
	}

	if a.NDim() == 0 {
		v, err := a.Item()
		if err != nil {
			return "<unreadable>"
		}
		return format(v)
	}
	if a.descr.Kind == dtype.Object {
		return "<unsupported>"
	}

	var sb strings.Builder
	var f func(axis, off int)
	f = func(axis, off int) {
		prefix := strings.Repeat(" ", axis+1)
		sb.WriteString("[")
		defer func() { sb.WriteString("]") }()
		dim := a.shape[axis]
		items := opts.EdgeItems
		for i := 0; i < dim; i++ {
			if i >= items && i < dim-items {
				sb.WriteString("..., ")
				skip := dim - 2*items
				if axis < a.NDim()-1 {
					fmt.Fprint(&sb, strings.Repeat("\n", a.NDim()-1-axis), prefix)
				}
				i += skip - 1
			} else if axis < a.NDim()-1 {
				f(axis+1, off+i*a.strides[axis])
				if i < dim-1 {
					fmt.Fprint(&sb, ",", strings.Repeat("\n", a.NDim()-1-axis), prefix)
				}
			} else {
				v, err := a.descr.GetItem(a.data[off+i*a.strides[axis] : off+i*a.strides[axis]+a.descr.Elsize])
				text := "<unreadable>"
				if err == nil {
					text = format(v)
				}
				if len(text) > 0 && text[0] != '-' {
					sb.WriteString(" ")
				}
				sb.WriteString(text)
				if i < dim-1 {
					sb.WriteString(", ")
				}
			}
		}
	}
	f(0, a.off)

	return sb.String()
}
