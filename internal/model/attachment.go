package model

import (
	"net/http"
	"strings"
)

// Attachment is a file carried by a multipart submission
// (profile photo, receipt, captured QR image)
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewAttachment builds an attachment, sniffing the content type when the
// caller does not provide one
func NewAttachment(filename string, data []byte) *Attachment {
	return &Attachment{
		Filename:    filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}
}

// IsImage reports whether the attachment is an image file
func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}
