package upstream

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Form accumulates fields and file parts for a multipart request.
type Form struct {
	fields []field
	files  []filePart
}

type field struct {
	name, value string
}

type filePart struct {
	fieldName string
	filename  string
	content   io.Reader
}

func NewForm() *Form { return &Form{} }

func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, field{name, value})
	return f
}

func (f *Form) File(fieldName, filename string, content io.Reader) *Form {
	f.files = append(f.files, filePart{fieldName, filename, content})
	return f
}

func (f *Form) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", fld.name, err)
		}
	}
	for _, fp := range f.files {
		part, err := w.CreateFormFile(fp.fieldName, fp.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", fp.fieldName, err)
		}
		if _, err := io.Copy(part, fp.content); err != nil {
			return nil, "", fmt.Errorf("copy file part %s: %w", fp.fieldName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
