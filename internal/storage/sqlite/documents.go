package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/leitstand/internal/errors"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/storage"
)

const timeLayout = time.RFC3339Nano

// now is replaced in tests
var now = func() time.Time { return time.Now().UTC() }

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (models.Document, error) {
	var (
		doc                  models.Document
		collection, data     string
		archived             bool
		createdAt, updatedAt string
		deletedAt            sql.NullString
	)
	if err := row.Scan(&collection, &doc.ID, &archived, &data, &createdAt, &updatedAt, &deletedAt); err != nil {
		return models.Document{}, err
	}
	doc.Collection = models.Collection(collection)
	doc.Archived = archived
	doc.Data = []byte(data)
	doc.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	doc.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	if deletedAt.Valid {
		if t, err := time.Parse(timeLayout, deletedAt.String); err == nil {
			doc.DeletedAt = &t
		}
	}
	return doc, nil
}

const selectColumns = `SELECT collection, id, archived, data, created_at, updated_at, deleted_at FROM documents`

// Put inserts or replaces a document. Creation time is kept on update and
// a soft-deleted document stays deleted.
func (s *Store) Put(doc models.Document) (models.Document, error) {
	if doc.ID == "" {
		return models.Document{}, fmt.Errorf("document id cannot be empty")
	}
	ts := now()
	_, err := s.db.Exec(`
		INSERT INTO documents (collection, id, archived, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			archived = excluded.archived,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		string(doc.Collection), doc.ID, doc.Archived, string(doc.Data), ts.Format(timeLayout), ts.Format(timeLayout))
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to save %s/%s: %w", doc.Collection, doc.ID, err)
	}
	return s.get(doc.Collection, doc.ID, true)
}

func (s *Store) get(c models.Collection, id string, includeDeleted bool) (models.Document, error) {
	query := selectColumns + ` WHERE collection = ? AND id = ?`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	doc, err := scanDocument(s.db.QueryRow(query, string(c), id))
	if err == sql.ErrNoRows {
		return models.Document{}, fmt.Errorf("%s/%s: %w", c, id, errors.ErrNotFound)
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to get %s/%s: %w", c, id, err)
	}
	return doc, nil
}

func (s *Store) Get(c models.Collection, id string) (models.Document, error) {
	return s.get(c, id, false)
}

func (s *Store) List(c models.Collection, opts storage.ListOptions) ([]models.Document, error) {
	query := selectColumns + ` WHERE collection = ?`
	if !opts.IncludeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	if !opts.IncludeArchived {
		query += ` AND archived = 0`
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

func (s *Store) update(c models.Collection, id, set, where string, args ...any) error {
	args = append(args, string(c), id)
	res, err := s.db.Exec(`UPDATE documents SET `+set+` WHERE collection = ? AND id = ? AND `+where, args...)
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

// SetArchived toggles the archived flag in both the column and the JSON body
func (s *Store) SetArchived(c models.Collection, id string, archived bool) error {
	return s.update(c, id,
		`archived = ?, data = json_set(data, '$.archived', json(?)), updated_at = ?`,
		`deleted_at IS NULL`,
		archived, boolJSON(archived), now().Format(timeLayout))
}

func boolJSON(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (s *Store) Delete(c models.Collection, id string) error {
	return s.update(c, id, `deleted_at = ?`, `deleted_at IS NULL`, now().Format(timeLayout))
}

func (s *Store) Restore(c models.Collection, id string) error {
	return s.update(c, id, `deleted_at = NULL, updated_at = ?`, `deleted_at IS NOT NULL`, now().Format(timeLayout))
}

// Counts returns the number of live documents per collection
func (s *Store) Counts() (map[models.Collection]int, error) {
	rows, err := s.db.Query(`SELECT collection, COUNT(*) FROM documents WHERE deleted_at IS NULL GROUP BY collection`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[models.Collection]int)
	for rows.Next() {
		var c string
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, err
		}
		out[models.Collection(c)] = n
	}
	return out, rows.Err()
}
