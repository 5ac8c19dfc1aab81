package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/dishcovery/dishcovery/internal/filex"
)

// imageForm is a fully written multipart body plus the content type that
// carries its boundary.
type imageForm struct {
	body        *bytes.Buffer
	contentType string
}

// newImageForm builds a multipart form with the file at imagePath under
// the given field name, followed by any extra string fields.
func newImageForm(fieldName, imagePath string, fields map[string]string) (*imageForm, error) {
	if !filex.IsRegularFile(imagePath) {
		return nil, fmt.Errorf("image %s: not a regular file", imagePath)
	}

	file, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fieldName, filepath.Base(imagePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return &imageForm{body: &buf, contentType: writer.FormDataContentType()}, nil
}
