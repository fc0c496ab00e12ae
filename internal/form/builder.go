package form

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

// FileField is the form field name the API expects uploaded documents under.
const FileField = "filename"

const (
	defaultFilename    = "file"
	defaultContentType = "application/octet-stream"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Builder collects ordered form entries and encodes them as a multipart body.
// A Builder is used for a single request.
type Builder struct {
	meta    StreamMeta
	entries Fields
}

// NewBuilder returns a Builder that attaches meta to the stream entry.
func NewBuilder(meta StreamMeta) *Builder {
	return &Builder{meta: meta}
}

// Add appends a single entry.
func (b *Builder) Add(name string, value any) *Builder {
	b.entries = append(b.entries, Field{Name: name, Value: value})
	return b
}

// AddAll appends every field in order.
func (b *Builder) AddAll(fields Fields) *Builder {
	b.entries = append(b.entries, fields...)
	return b
}

// Encode returns the request body and its Content-Type.
//
// Bodies without readers are assembled in memory. Otherwise the body is a
// pipe fed by a goroutine that copies each reader as the transport consumes
// it; closing the returned reader early stops that goroutine.
func (b *Builder) Encode() (io.Reader, string, error) {
	if !b.streaming() {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		if err := b.write(mw); err != nil {
			return nil, "", err
		}
		if err := mw.Close(); err != nil {
			return nil, "", fmt.Errorf("finalize multipart: %w", err)
		}
		return bytes.NewReader(buf.Bytes()), mw.FormDataContentType(), nil
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := b.write(mw)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()
	return pr, mw.FormDataContentType(), nil
}

func (b *Builder) streaming() bool {
	for _, e := range b.entries {
		if _, ok := e.Value.(io.Reader); ok {
			return true
		}
	}
	return false
}

func (b *Builder) write(mw *multipart.Writer) error {
	for _, e := range b.entries {
		r, ok := e.Value.(io.Reader)
		if !ok {
			if err := mw.WriteField(e.Name, Stringify(e.Value)); err != nil {
				return fmt.Errorf("write field %s: %w", e.Name, err)
			}
			continue
		}

		name, filename, contentType := e.Name, e.Name, defaultContentType
		if e.Name == KeyStream {
			name = FileField
			filename = b.filename(r)
			if b.meta.ContentType != "" {
				contentType = b.meta.ContentType
			}
		}

		part, err := mw.CreatePart(fileHeader(name, filename, contentType))
		if err != nil {
			return fmt.Errorf("create %s part: %w", name, err)
		}
		if _, err := io.Copy(part, r); err != nil {
			return fmt.Errorf("copy %s: %w", name, err)
		}
	}
	return nil
}

// filename picks the stream's upload name: explicit metadata first, then the
// base name of a named reader such as *os.File.
func (b *Builder) filename(r io.Reader) string {
	if b.meta.Filename != "" {
		return b.meta.Filename
	}
	if n, ok := r.(interface{ Name() string }); ok && n.Name() != "" {
		return filepath.Base(n.Name())
	}
	return defaultFilename
}

func fileHeader(name, filename, contentType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(name), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)
	return h
}
