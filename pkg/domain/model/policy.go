package model

import "github.com/crivello-lab/crivello/pkg/domain/types"

// AllowedLabelsForRole maps a workspace role to the set of classification
// labels it may read. The mapping is monotone: each role's set includes all
// less-sensitive labels.
//
// Unknown roles fall back to the most restrictive set ({public}) and return
// known=false so the caller can emit a warning event; the function itself is
// pure and total.
func AllowedLabelsForRole(role types.WorkspaceRole) (labels []types.ClassificationLabel, known bool) {
	switch role {
	case types.RoleAdmin:
		return []types.ClassificationLabel{
			types.ClassificationPublic,
			types.ClassificationInternal,
			types.ClassificationConfidential,
			types.ClassificationRestricted,
		}, true
	case types.RoleMember:
		return []types.ClassificationLabel{
			types.ClassificationPublic,
			types.ClassificationInternal,
		}, true
	default:
		return []types.ClassificationLabel{types.ClassificationPublic}, false
	}
}

// LabelSet converts a label slice into a membership set
func LabelSet(labels []types.ClassificationLabel) map[types.ClassificationLabel]bool {
	set := make(map[types.ClassificationLabel]bool, len(labels))
	for _, label := range labels {
		set[label] = true
	}
	return set
}
