package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/leitstand/internal/errors"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/storage"
)

const selectColumns = `SELECT collection, id, archived, data, created_at, updated_at, deleted_at FROM documents`

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (models.Document, error) {
	var (
		doc        models.Document
		collection string
		data       []byte
		deletedAt  sql.NullTime
	)
	if err := row.Scan(&collection, &doc.ID, &doc.Archived, &data, &doc.CreatedAt, &doc.UpdatedAt, &deletedAt); err != nil {
		return models.Document{}, err
	}
	doc.Collection = models.Collection(collection)
	doc.Data = data
	if deletedAt.Valid {
		t := deletedAt.Time
		doc.DeletedAt = &t
	}
	return doc, nil
}

func (s *Store) Put(doc models.Document) (models.Document, error) {
	if doc.ID == "" {
		return models.Document{}, fmt.Errorf("document id cannot be empty")
	}
	ts := time.Now().UTC()
	row := s.db.QueryRow(`
INSERT INTO documents (collection, id, archived, data, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
ON CONFLICT (collection, id) DO UPDATE SET
	archived = EXCLUDED.archived,
	data = EXCLUDED.data,
	updated_at = EXCLUDED.updated_at
RETURNING collection, id, archived, data, created_at, updated_at, deleted_at`,
		string(doc.Collection), doc.ID, doc.Archived, string(doc.Data), ts)
	out, err := scanDocument(row)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to save %s/%s: %w", doc.Collection, doc.ID, err)
	}
	return out, nil
}

func (s *Store) Get(c models.Collection, id string) (models.Document, error) {
	doc, err := scanDocument(s.db.QueryRow(selectColumns+` WHERE collection = $1 AND id = $2 AND deleted_at IS NULL`, string(c), id))
	if err == sql.ErrNoRows {
		return models.Document{}, fmt.Errorf("%s/%s: %w", c, id, errors.ErrNotFound)
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to get %s/%s: %w", c, id, err)
	}
	return doc, nil
}

func (s *Store) List(c models.Collection, opts storage.ListOptions) ([]models.Document, error) {
	query := selectColumns + ` WHERE collection = $1`
	if !opts.IncludeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	if !opts.IncludeArchived {
		query += ` AND NOT archived`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.Query(query, string(c))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *Store) exec(c models.Collection, id, query string, args ...any) error {
	res, err := s.db.Exec(query, append([]any{string(c), id}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", c, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s/%s: %w", c, id, errors.ErrNotFound)
	}
	return nil
}

func (s *Store) SetArchived(c models.Collection, id string, archived bool) error {
	return s.exec(c, id, `
UPDATE documents SET archived = $3, data = jsonb_set(data, '{archived}', to_jsonb($3::boolean)), updated_at = now()
WHERE collection = $1 AND id = $2 AND deleted_at IS NULL`, archived)
}

func (s *Store) Delete(c models.Collection, id string) error {
	return s.exec(c, id, `UPDATE documents SET deleted_at = now() WHERE collection = $1 AND id = $2 AND deleted_at IS NULL`)
}

func (s *Store) Restore(c models.Collection, id string) error {
	return s.exec(c, id, `UPDATE documents SET deleted_at = NULL, updated_at = now() WHERE collection = $1 AND id = $2 AND deleted_at IS NOT NULL`)
}
