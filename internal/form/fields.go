// Package form assembles the multipart form bodies sent to the Phaxio API.
//
// Options arrive as an ordered list of name/value pairs. [Split] separates the
// two stream metadata keys (contentType and filename) from the fields that are
// forwarded to the API, and [Builder] encodes the result as multipart/form-data,
// streaming any io.Reader values instead of buffering them.
package form

import (
	"fmt"
	"strconv"
)

// Reserved option keys.
const (
	KeyStream      = "stream"
	KeyContentType = "contentType"
	KeyFilename    = "filename"
)

// Field is a single named form value. Value may be a string, a scalar, a
// fmt.Stringer or an io.Reader.
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered mapping of field names to values. Duplicate names are
// allowed and are sent as repeated form fields.
type Fields []Field

// Get returns the value of the first field with the given name.
func (f Fields) Get(name string) (any, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

// StreamMeta describes the uploaded stream.
type StreamMeta struct {
	ContentType string
	Filename    string
}

// SplitResult holds the outcome of [Split].
type SplitResult struct {
	FormFields Fields
	StreamMeta StreamMeta
}

// Split partitions opts into form fields and stream metadata. The contentType
// and filename keys go to StreamMeta (the last occurrence wins); every other
// entry is forwarded unchanged and in order, including unknown keys.
func Split(opts Fields) SplitResult {
	res := SplitResult{FormFields: Fields{}}
	for _, opt := range opts {
		switch opt.Name {
		case KeyContentType:
			res.StreamMeta.ContentType = Stringify(opt.Value)
		case KeyFilename:
			res.StreamMeta.Filename = Stringify(opt.Value)
		default:
			res.FormFields = append(res.FormFields, opt)
		}
	}
	return res
}

// Stringify renders a scalar field value the way it is written to the form.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
