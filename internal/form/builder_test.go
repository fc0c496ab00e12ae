package form

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type part struct {
	name        string
	filename    string
	contentType string
	data        string
}

func readParts(t *testing.T, body io.Reader, contentType string) []part {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("ParseMediaType(%q) error = %v", contentType, err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("media type = %q, want multipart/form-data", mediaType)
	}

	var parts []part
	mr := multipart.NewReader(body, params["boundary"])
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart() error = %v", err)
		}
		data, err := io.ReadAll(p)
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		parts = append(parts, part{
			name:        p.FormName(),
			filename:    p.FileName(),
			contentType: p.Header.Get("Content-Type"),
			data:        string(data),
		})
	}
	return parts
}

func TestBuilder_ScalarFieldsInOrder(t *testing.T) {
	b := NewBuilder(StreamMeta{}).
		Add("to", "1235551212").
		Add("api_key", "key").
		AddAll(Fields{{"batch", true}, {"batch_delay", 60}})

	body, ct, err := b.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if _, ok := body.(*bytes.Reader); !ok {
		t.Errorf("body type = %T, want *bytes.Reader for a buffered form", body)
	}

	parts := readParts(t, body, ct)
	want := []part{
		{name: "to", data: "1235551212"},
		{name: "api_key", data: "key"},
		{name: "batch", data: "true"},
		{name: "batch_delay", data: "60"},
	}
	if len(parts) != len(want) {
		t.Fatalf("got %d parts, want %d", len(parts), len(want))
	}
	for i := range want {
		if parts[i].name != want[i].name || parts[i].data != want[i].data {
			t.Errorf("part %d = %s=%q, want %s=%q", i, parts[i].name, parts[i].data, want[i].name, want[i].data)
		}
	}
}

func TestBuilder_StreamUsesMeta(t *testing.T) {
	b := NewBuilder(StreamMeta{ContentType: "application/pdf", Filename: "foo.pdf"}).
		Add("to", "1").
		Add(KeyStream, strings.NewReader("%PDF-1.4 body"))

	body, ct, err := b.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if _, ok := body.(*io.PipeReader); !ok {
		t.Errorf("body type = %T, want *io.PipeReader for a streamed form", body)
	}

	parts := readParts(t, body, ct)
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	file := parts[1]
	if file.name != FileField {
		t.Errorf("file part name = %q, want %q", file.name, FileField)
	}
	if file.filename != "foo.pdf" {
		t.Errorf("filename = %q, want foo.pdf", file.filename)
	}
	if file.contentType != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", file.contentType)
	}
	if file.data != "%PDF-1.4 body" {
		t.Errorf("data = %q", file.data)
	}
}

func TestBuilder_StreamDefaults(t *testing.T) {
	body, ct, err := NewBuilder(StreamMeta{}).Add(KeyStream, strings.NewReader("x")).Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	parts := readParts(t, body, ct)
	if parts[0].filename != defaultFilename {
		t.Errorf("filename = %q, want %q", parts[0].filename, defaultFilename)
	}
	if parts[0].contentType != defaultContentType {
		t.Errorf("content type = %q, want %q", parts[0].contentType, defaultContentType)
	}
}

func TestBuilder_StreamFilenameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	body, ct, err := NewBuilder(StreamMeta{}).Add(KeyStream, f).Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	parts := readParts(t, body, ct)
	if parts[0].filename != "report.txt" {
		t.Errorf("filename = %q, want report.txt", parts[0].filename)
	}
	if parts[0].data != "hello" {
		t.Errorf("data = %q, want hello", parts[0].data)
	}
}

func TestBuilder_OtherReaderKeepsName(t *testing.T) {
	body, ct, err := NewBuilder(StreamMeta{Filename: "ignored.pdf"}).
		Add("filename[1]", strings.NewReader("second")).
		Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	parts := readParts(t, body, ct)
	if parts[0].name != "filename[1]" || parts[0].filename != "filename[1]" {
		t.Errorf("part = %+v", parts[0])
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestBuilder_StreamErrorPropagates(t *testing.T) {
	body, _, err := NewBuilder(StreamMeta{}).Add(KeyStream, failingReader{}).Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	_, err = io.ReadAll(body)
	if err == nil || !strings.Contains(err.Error(), "disk gone") {
		t.Errorf("ReadAll() error = %v, want disk gone", err)
	}
}

func TestBuilder_EarlyCloseStopsWriter(t *testing.T) {
	big := strings.NewReader(strings.Repeat("a", 1<<20))
	body, _, err := NewBuilder(StreamMeta{}).Add(KeyStream, big).Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	pr := body.(*io.PipeReader)
	buf := make([]byte, 16)
	if _, err := pr.Read(buf); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if err := pr.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
