package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/masego-dev/clubctl/internal/model"
)

// FormFile pairs a multipart field name with an attachment
type FormFile struct {
	Field      string
	Attachment *model.Attachment
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// encodeMultipart builds a multipart/form-data body. The body is returned as
// bytes so the same request can be retried after a token refresh.
func encodeMultipart(fields map[string]string, files []FormFile) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to encode field %s: %w", name, err)
		}
	}

	for _, f := range files {
		if f.Attachment == nil {
			continue
		}

		// CreateFormFile forces application/octet-stream; build the part
		// header by hand to keep the attachment's real content type.
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(
			`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.Field),
			quoteEscaper.Replace(f.Attachment.Filename),
		))
		if f.Attachment.ContentType != "" {
			header.Set("Content-Type", f.Attachment.ContentType)
		}

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode file %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Attachment.Data); err != nil {
			return nil, "", fmt.Errorf("failed to encode file %s: %w", f.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
