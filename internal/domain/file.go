package domain

import (
	"strings"
	"time"
)

// JournalFile represents a single journal document owned by the user.
type JournalFile struct {
	ID        string
	Name      string
	Path      string
	Folder    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	// IndexedAt is nil until the file's chunks have been embedded and stored.
	IndexedAt *time.Time
}

// NewJournalFile creates a new JournalFile instance
func NewJournalFile(id, name, path, folder, content string, now time.Time) *JournalFile {
	return &JournalFile{
		ID:        id,
		Name:      name,
		Path:      path,
		Folder:    folder,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidateJournalFile validates a JournalFile instance
func ValidateJournalFile(f *JournalFile) error {
	if f == nil {
		return ErrMissingRequiredField
	}
	if f.ID == "" {
		return NewDomainError(ErrCodeValidation, "journal file ID is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return NewDomainError(ErrCodeValidation, "journal file name is required")
	}
	return nil
}

// NeedsIndexing reports whether the file content changed after its last index pass.
func (f *JournalFile) NeedsIndexing() bool {
	return f.IndexedAt == nil || f.UpdatedAt.After(*f.IndexedAt)
}
