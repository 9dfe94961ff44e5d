package models

import "time"

// DocumentType is the fixed set of papers a client must provide before
// their account can be reviewed. The French names come straight from
// the storefront: carte nationale d'identité, permis de conduire,
// facture de domiciliation.
type DocumentType string

const (
	DocumentTypeCNI     DocumentType = "cni"
	DocumentTypePermis  DocumentType = "permis"
	DocumentTypeFacture DocumentType = "facture"
)

// RequiredDocumentTypes lists every type an account needs on file
// before it moves from pending to submitted.
var RequiredDocumentTypes = []DocumentType{
	DocumentTypeCNI,
	DocumentTypePermis,
	DocumentTypeFacture,
}

func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeCNI, DocumentTypePermis, DocumentTypeFacture:
		return true
	}
	return false
}

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentPending, DocumentApproved, DocumentRejected:
		return true
	}
	return false
}

// Document is one uploaded file per (user, type) pair. Re-uploading a
// type replaces the stored file and resets the status to pending.
type Document struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	Type      DocumentType   `db:"type"`
	FileURL   string         `db:"file_url"`
	Status    DocumentStatus `db:"status"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}
