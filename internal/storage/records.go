// Package storage defines the document store used for every record
// collection and the typed helpers layered on top of it.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/leitstand/internal/errors"
	"github.com/julianstephens/leitstand/internal/models"
)

// SaveRecord validates rec, assigns an id when it has none and stores it
// under c. It returns the stored id.
func SaveRecord(p Provider, c models.Collection, rec models.Record) (string, error) {
	if v, ok := rec.(models.Validator); ok {
		if err := v.Validate(); err != nil {
			return "", fmt.Errorf("invalid %s record: %w", c, err)
		}
	}
	if rec.RecordID() == "" {
		rec.SetRecordID(uuid.New().String())
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}

	doc, err := p.Put(models.Document{
		Collection: c,
		ID:         rec.RecordID(),
		Archived:   rec.IsArchived(),
		Data:       data,
	})
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

// GetRecord loads and decodes one live record
func GetRecord(p Provider, c models.Collection, id string) (models.Record, error) {
	doc, err := p.Get(c, id)
	if err != nil {
		return nil, err
	}
	return models.Decode(doc)
}

// ListRecords loads and decodes the documents of c
func ListRecords(p Provider, c models.Collection, opts ListOptions) ([]models.Record, error) {
	docs, err := p.List(c, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c, err)
	}
	out := make([]models.Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := models.Decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// LoadSnapshot reads every record collection. Archived records are part of
// the snapshot; views decide whether to show them.
func LoadSnapshot(p Provider) (*models.Snapshot, error) {
	s := &models.Snapshot{}
	for _, c := range models.RecordCollections {
		records, err := ListRecords(p, c, ListOptions{IncludeArchived: true})
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if err := s.Add(rec); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// Users returns the live user accounts
func Users(p Provider) ([]models.User, error) {
	docs, err := p.List(models.CollectionUsers, ListOptions{IncludeArchived: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		u, err := models.DecodeAs[models.User](doc)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// FindUser looks up a live account by username, case-insensitively
func FindUser(p Provider, username string) (models.User, error) {
	users, err := Users(p)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", username, errors.ErrNotFound)
}
