// internal/model/file.go
package model

import "time"

// BinaryContentPlaceholder is stored instead of raw bytes when an
// uploaded payload is not valid UTF-8.
const BinaryContentPlaceholder = "Binary Content (Not Displayed)"

type File struct {
	ID         string    `json:"id" db:"id"`
	TenantID   string    `json:"-" db:"tenant_id"`
	Name       string    `json:"name" db:"name"`
	Size       int64     `json:"size" db:"size"`
	Content    string    `json:"content" db:"content"`
	UploadedAt time.Time `json:"uploadedAt" db:"uploaded_at"`
	URL        string    `json:"url" db:"url"`
}
