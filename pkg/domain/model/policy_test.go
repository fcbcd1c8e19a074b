package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
)

func TestAllowedLabelsForRole(t *testing.T) {
	t.Run("admin reads every label", func(t *testing.T) {
		labels, known := model.AllowedLabelsForRole(types.RoleAdmin)
		gt.Bool(t, known).True()
		gt.Array(t, labels).Length(4)
	})

	t.Run("member reads public and internal only", func(t *testing.T) {
		labels, known := model.AllowedLabelsForRole(types.RoleMember)
		gt.Bool(t, known).True()
		set := model.LabelSet(labels)
		gt.Bool(t, set[types.ClassificationPublic]).True()
		gt.Bool(t, set[types.ClassificationInternal]).True()
		gt.Bool(t, set[types.ClassificationConfidential]).False()
		gt.Bool(t, set[types.ClassificationRestricted]).False()
	})

	t.Run("unknown role falls back to public", func(t *testing.T) {
		labels, known := model.AllowedLabelsForRole(types.WorkspaceRole("auditor"))
		gt.Bool(t, known).False()
		gt.Array(t, labels).Length(1)
		gt.Value(t, labels[0]).Equal(types.ClassificationPublic)
	})

	t.Run("role sets are monotone", func(t *testing.T) {
		memberLabels, _ := model.AllowedLabelsForRole(types.RoleMember)
		adminLabels, _ := model.AllowedLabelsForRole(types.RoleAdmin)
		adminSet := model.LabelSet(adminLabels)
		for _, label := range memberLabels {
			gt.Bool(t, adminSet[label]).True()
		}
	})
}
