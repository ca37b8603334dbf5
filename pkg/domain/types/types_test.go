package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

func TestPriority(t *testing.T) {
	t.Run("valid priorities", func(t *testing.T) {
		for _, p := range types.AllPriorities() {
			gt.Bool(t, p.IsValid()).True()
		}
	})

	t.Run("invalid priority", func(t *testing.T) {
		gt.Bool(t, types.Priority("4").IsValid()).False()
		gt.Bool(t, types.Priority("high").IsValid()).False()
		gt.Bool(t, types.Priority("").IsValid()).False()
	})

	t.Run("normalize defaults empty to normal", func(t *testing.T) {
		gt.Value(t, types.Priority("").Normalize()).Equal(types.PriorityNormal)
		gt.Value(t, types.PriorityUrgent.Normalize()).Equal(types.PriorityUrgent)
	})

	t.Run("parse rejects unknown values", func(t *testing.T) {
		p, err := types.ParsePriority("2")
		gt.NoError(t, err)
		gt.Value(t, p).Equal(types.PriorityHigh)

		_, err = types.ParsePriority("urgent")
		gt.Value(t, err).NotNil()
	})

	t.Run("labels", func(t *testing.T) {
		gt.Value(t, types.PriorityLow.Label()).Equal("Low")
		gt.Value(t, types.PriorityUrgent.Label()).Equal("Urgent")
	})
}

func TestIDShapes(t *testing.T) {
	t.Run("generated card ids carry the task prefix", func(t *testing.T) {
		id := types.NewCardID()
		gt.Bool(t, id.IsValid()).True()

		other := types.NewCardID()
		gt.Value(t, id).NotEqual(other)
	})

	t.Run("prefix mismatch is invalid", func(t *testing.T) {
		gt.Bool(t, types.CardID("task:42").IsValid()).True()
		gt.Bool(t, types.CardID("project:42").IsValid()).False()
		gt.Bool(t, types.CardID("task:").IsValid()).False()
		gt.Bool(t, types.BoardID("project:1").IsValid()).True()
		gt.Bool(t, types.ActivityID("msg:7").IsValid()).True()
	})
}

func TestActivityType(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		at, err := types.ParseActivityType("stage_change")
		gt.NoError(t, err)
		gt.Value(t, at).Equal(types.ActivityTypeStageChange)

		_, err = types.ParseActivityType("renamed")
		gt.Value(t, err).NotNil()
	})
}

func TestRole(t *testing.T) {
	t.Run("write permission", func(t *testing.T) {
		gt.Bool(t, types.RoleAdmin.CanWrite()).True()
		gt.Bool(t, types.RoleManager.CanWrite()).True()
		gt.Bool(t, types.RoleContributor.CanWrite()).True()
		gt.Bool(t, types.RoleViewer.CanWrite()).False()
	})
}
