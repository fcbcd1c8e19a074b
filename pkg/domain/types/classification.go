package types

import "github.com/m-mizutani/goerr/v2"

// ClassificationLabel represents the sensitivity level of a document.
// The four labels form a fixed total order from least to most sensitive.
type ClassificationLabel string

const (
	ClassificationPublic       ClassificationLabel = "public"
	ClassificationInternal     ClassificationLabel = "internal"
	ClassificationConfidential ClassificationLabel = "confidential"
	ClassificationRestricted   ClassificationLabel = "restricted"
)

// DefaultClassification is assigned to documents at ingestion time
const DefaultClassification = ClassificationInternal

// AllClassificationLabels returns all valid labels in ascending sensitivity order
func AllClassificationLabels() []ClassificationLabel {
	return []ClassificationLabel{
		ClassificationPublic,
		ClassificationInternal,
		ClassificationConfidential,
		ClassificationRestricted,
	}
}

// IsValid checks if the label is one of the four fixed values
func (l ClassificationLabel) IsValid() bool {
	switch l {
	case ClassificationPublic,
		ClassificationInternal,
		ClassificationConfidential,
		ClassificationRestricted:
		return true
	default:
		return false
	}
}

func (l ClassificationLabel) String() string { return string(l) }

// ParseClassificationLabel parses a string into a ClassificationLabel
func ParseClassificationLabel(s string) (ClassificationLabel, error) {
	label := ClassificationLabel(s)
	if !label.IsValid() {
		return "", goerr.New("invalid classification label",
			goerr.V("label", s), goerr.T(TagValidation))
	}
	return label, nil
}
