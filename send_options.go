package phaxio

import (
	"io"

	"github.com/faxkit/phaxio-go/internal/form"
)

// Field is a single sendFax parameter.
type Field = form.Field

// Params is an ordered list of sendFax parameters. Repeated names are sent
// as repeated form fields.
type Params = form.Fields

// SendOptions configures a Send call.
type SendOptions struct {
	// Stream is uploaded as the fax document. The caller keeps ownership
	// and closes it after Send returns.
	Stream io.Reader
	// ContentType of Stream. Default: application/octet-stream
	ContentType string
	// Filename reported for Stream. Defaults to the base name of an *os.File,
	// otherwise "file".
	Filename string

	// StringData is sent instead of (or next to) a document.
	StringData string
	// StringDataType is one of "html", "url" or "text".
	StringDataType string

	// Params holds any other sendFax parameter, forwarded verbatim.
	Params Params
}

// Fields lowers the options into the ordered option list sent to the API.
// Unset options are omitted. A nil receiver yields no fields.
func (o *SendOptions) Fields() Params {
	if o == nil {
		return nil
	}

	var f Params
	if o.Stream != nil {
		f = append(f, Field{Name: form.KeyStream, Value: o.Stream})
	}
	if o.ContentType != "" {
		f = append(f, Field{Name: form.KeyContentType, Value: o.ContentType})
	}
	if o.Filename != "" {
		f = append(f, Field{Name: form.KeyFilename, Value: o.Filename})
	}
	if o.StringData != "" {
		f = append(f, Field{Name: "string_data", Value: o.StringData})
	}
	if o.StringDataType != "" {
		f = append(f, Field{Name: "string_data_type", Value: o.StringDataType})
	}
	return append(f, o.Params...)
}
