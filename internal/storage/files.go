// internal/storage/files.go
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"tenant-portal/internal/model"
)

func (s *Storage) InsertFile(f *model.File) error {
	_, err := s.DB.Exec(`
		INSERT INTO files (id, tenant_id, name, size, content, uploaded_at, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		f.ID, f.TenantID, f.Name, f.Size, f.Content, f.UploadedAt, f.URL)
	return err
}

func (s *Storage) ListFiles(tenantID string) ([]model.File, error) {
	rows, err := s.DB.Query(`
		SELECT id, tenant_id, name, COALESCE(size, 0), COALESCE(content, ''),
			uploaded_at, COALESCE(url, '')
		FROM files
		WHERE tenant_id = $1
		ORDER BY uploaded_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := []model.File{}
	for rows.Next() {
		var f model.File
		var uploaded sql.NullTime
		if err := rows.Scan(&f.ID, &f.TenantID, &f.Name, &f.Size, &f.Content, &uploaded, &f.URL); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		f.UploadedAt = uploaded.Time
		files = append(files, f)
	}
	return files, rows.Err()
}

// DeleteFile removes the file scoped to its tenant. ErrNotFound when no
// row matched.
func (s *Storage) DeleteFile(tenantID, fileID string) error {
	var deleted string
	err := s.DB.QueryRow(`DELETE FROM files WHERE id = $1 AND tenant_id = $2 RETURNING id`,
		fileID, tenantID).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
