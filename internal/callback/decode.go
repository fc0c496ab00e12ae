// Package callback decodes and verifies the notifications Phaxio POSTs to a
// configured callback URL.
package callback

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"mime"
	"net/http"
	"net/url"
	"slices"
)

// SignatureHeader carries the HMAC signature of a callback.
const SignatureHeader = "X-Phaxio-Signature"

var (
	// ErrFileUpload is returned when a callback body contains a file part.
	ErrFileUpload = errors.New("file uploads are not accepted")

	// ErrUnsupportedMediaType is returned when a callback body is not a form.
	ErrUnsupportedMediaType = errors.New("callback body must be form-encoded")
)

// jsonFields are the callback fields whose values are JSON documents.
var jsonFields = map[string]bool{
	"fax":     true,
	"is_test": true,
	"success": true,
}

// IsJSONField reports whether name holds a JSON-encoded value.
func IsJSONField(name string) bool {
	return jsonFields[name]
}

// FieldError reports a JSON field that failed to decode.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid JSON in field %q", e.Field)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// ReadForm reads the form fields of a callback request. Only url-encoded and
// multipart bodies are accepted; anything else fails with
// ErrUnsupportedMediaType. A multipart file part fails the whole request with
// ErrFileUpload.
func ReadForm(r *http.Request) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		return r.PostForm, nil
	case "multipart/form-data":
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedMediaType, mediaType)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	values := url.Values{}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return values, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		if part.FileName() != "" {
			return nil, ErrFileUpload
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return nil, fmt.Errorf("read field %s: %w", part.FormName(), err)
		}
		values.Add(part.FormName(), string(data))
	}
}

// Decode builds a payload from form values. The fax, is_test and success
// fields are JSON-decoded; every other field keeps its raw string. Only the
// first value of a repeated field is used. Fields are checked in name order,
// so the reported FieldError is deterministic.
func Decode(values url.Values) (map[string]any, error) {
	out := make(map[string]any, len(values))
	for _, name := range slices.Sorted(maps.Keys(values)) {
		vals := values[name]
		if len(vals) == 0 {
			continue
		}
		if !IsJSONField(name) {
			out[name] = vals[0]
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(vals[0]), &v); err != nil {
			return nil, &FieldError{Field: name, Err: err}
		}
		out[name] = v
	}
	return out, nil
}
