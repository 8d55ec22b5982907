package linkrewrite

import (
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	ferrors "git.home.luguber.info/inful/wikimigrate/internal/foundation/errors"
)

// Encoding names the decoding a document was read with.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin-1"
)

// ErrInvalidUTF8 is the only decoding failure that triggers the latin-1 fallback.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// Document is the full text of one file held in memory.
type Document struct {
	Path     string
	Content  string
	Encoding Encoding
	Mode     fs.FileMode
}

// ReadDocument reads path fully and decodes it. Content that is not valid UTF-8 is
// decoded as ISO-8859-1, which accepts every byte, so only I/O errors are returned.
func ReadDocument(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ioError("failed to stat document", path, err)
	}
	// #nosec G304 - path comes from walking the working copy
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("failed to read document", path, err)
	}
	content, enc, err := decode(raw)
	if err != nil {
		return nil, ioError("failed to decode document", path, err)
	}
	return &Document{Path: path, Content: content, Encoding: enc, Mode: info.Mode().Perm()}, nil
}

// Write replaces the file content with content encoded as UTF-8, keeping the file mode.
func (d *Document) Write(content string) error {
	if err := os.WriteFile(d.Path, []byte(content), d.Mode); err != nil {
		return ioError("failed to write document", d.Path, err)
	}
	d.Content = content
	d.Encoding = EncodingUTF8
	return nil
}

func decode(raw []byte) (string, Encoding, error) {
	content, err := decodeUTF8(raw)
	if err == nil {
		return content, EncodingUTF8, nil
	}
	if !errors.Is(err, ErrInvalidUTF8) {
		return "", "", err
	}
	latin, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", "", err
	}
	return string(latin), EncodingLatin1, nil
}

func decodeUTF8(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}

func ioError(message, path string, err error) error {
	return ferrors.FileSystemError(message).
		WithCause(err).
		WithContext("path", path).
		Build()
}
