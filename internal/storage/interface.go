package storage

import "github.com/julianstephens/leitstand/internal/models"

// ListOptions widens List beyond live, non-archived documents
type ListOptions struct {
	IncludeArchived bool
	IncludeDeleted  bool
}

// Provider is a document store keyed by (collection, id). Deletes are soft:
// a deleted document keeps its data until restored.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents
	Put(doc models.Document) (models.Document, error)
	Get(c models.Collection, id string) (models.Document, error)
	List(c models.Collection, opts ListOptions) ([]models.Document, error)
	SetArchived(c models.Collection, id string, archived bool) error
	Delete(c models.Collection, id string) error
	Restore(c models.Collection, id string) error

	// Utils
	GetConfigPath() string
}
