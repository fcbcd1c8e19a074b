package model

import (
	"time"

	"github.com/crivello-lab/crivello/pkg/domain/types"
)

// Document is a workspace-scoped text unit produced by ingestion.
// Only the classification label is mutable after creation.
type Document struct {
	ID                  types.DocumentID
	WorkspaceID         types.WorkspaceID
	Title               string
	SourceURL           string
	License             string
	AccessedAt          *time.Time
	Text                string
	ClassificationLabel types.ClassificationLabel
	CreatedAt           time.Time
}

// DocumentMetadata is the document projection returned by inventory and
// classification endpoints (no full text).
type DocumentMetadata struct {
	ID                  types.DocumentID
	WorkspaceID         types.WorkspaceID
	Title               string
	SourceURL           string
	License             string
	AccessedAt          *time.Time
	ClassificationLabel types.ClassificationLabel
}

// Metadata returns the metadata projection of the document
func (d *Document) Metadata() DocumentMetadata {
	return DocumentMetadata{
		ID:                  d.ID,
		WorkspaceID:         d.WorkspaceID,
		Title:               d.Title,
		SourceURL:           d.SourceURL,
		License:             d.License,
		AccessedAt:          d.AccessedAt,
		ClassificationLabel: d.ClassificationLabel,
	}
}
