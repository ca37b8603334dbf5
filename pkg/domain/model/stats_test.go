package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/model/config"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

func statsBoard() *model.Board {
	wip := 1
	owner := model.Partner{ID: 1, Email: "amy@example.com", Name: "Amy"}
	return &model.Board{
		ID:    "project:1",
		Name:  "Platform",
		Owner: owner,
		Members: []model.BoardMember{
			{Partner: owner, Role: types.RoleAdmin},
		},
		Stages: []model.Stage{
			{ID: "stage:10", Name: "Backlog", Order: 10},
			{ID: "stage:20", Name: "To Do", Order: 20},
			{ID: "stage:30", Name: "Doing", Order: 30, WIPLimit: &wip},
			{ID: "stage:40", Name: "Review", Order: 40},
			{ID: "stage:50", Name: "Done", Order: 50},
		},
		Tags: []model.Tag{
			{ID: "tag:bug", Name: "bug"},
			{ID: "tag:docs", Name: "docs"},
		},
	}
}

func TestComputeBoardStats(t *testing.T) {
	board := statsBoard()
	amy := model.Partner{ID: 1, Email: "amy@example.com", Name: "Amy"}
	bob := model.Partner{ID: 2, Email: "bob@example.com", Name: "Bob"}

	cards := []*model.Card{
		{ID: "task:1", StageID: "stage:10", Priority: types.PriorityNormal, Owners: []model.Partner{amy}},
		{ID: "task:2", StageID: "stage:30", Priority: types.PriorityHigh, Owners: []model.Partner{amy, bob}, Tags: []types.TagID{"tag:bug"}},
		{ID: "task:3", StageID: "stage:30", Priority: types.PriorityHigh},
		{ID: "task:4", StageID: "stage:30", Priority: types.PriorityUrgent, Checklist: []model.ChecklistItem{
			{ID: "c1", Text: "a", Done: true},
			{ID: "c2", Text: "b", Done: false},
		}},
		{ID: "task:5", StageID: "stage:50", Priority: types.PriorityLow, Owners: []model.Partner{bob}},
	}

	t.Run("per-stage counts cover every stage and sum to total", func(t *testing.T) {
		stats := model.ComputeBoardStats(board, cards, nil)

		gt.Value(t, stats.TotalCards).Equal(5)
		gt.Number(t, len(stats.CardsByStage)).Equal(len(board.Stages))

		sum := 0
		for _, n := range stats.CardsByStage {
			sum += n
		}
		gt.Value(t, sum).Equal(stats.TotalCards)
		gt.Value(t, stats.CardsByStage["stage:20"]).Equal(0)
		gt.Value(t, stats.CardsByStage["stage:30"]).Equal(3)
	})

	t.Run("owner counts are per-owner, sorted by email", func(t *testing.T) {
		stats := model.ComputeBoardStats(board, cards, nil)

		gt.Array(t, stats.CardsByOwner).Length(2)
		gt.Value(t, stats.CardsByOwner[0].Email).Equal("amy@example.com")
		gt.Value(t, stats.CardsByOwner[0].Count).Equal(2)
		gt.Value(t, stats.CardsByOwner[1].Email).Equal("bob@example.com")
		gt.Value(t, stats.CardsByOwner[1].Count).Equal(2)
	})

	t.Run("default policy buckets by first and last ordered stage", func(t *testing.T) {
		stats := model.ComputeBoardStats(board, cards, nil)

		gt.Value(t, stats.Completion.NotStarted).Equal(1)
		gt.Value(t, stats.Completion.Completed).Equal(1)
		gt.Value(t, stats.Completion.InProgress).Equal(3)
	})

	t.Run("explicit policy overrides stage positions", func(t *testing.T) {
		policy := &config.StagePolicy{
			InitialStageIDs:  []types.StageID{"stage:10"},
			TerminalStageIDs: []types.StageID{"stage:30"},
		}
		stats := model.ComputeBoardStats(board, cards, policy)

		gt.Value(t, stats.Completion.NotStarted).Equal(1)
		gt.Value(t, stats.Completion.Completed).Equal(3)
		gt.Value(t, stats.Completion.InProgress).Equal(1)
	})

	t.Run("checklist average only counts checklist-bearing cards", func(t *testing.T) {
		stats := model.ComputeBoardStats(board, cards, nil)
		gt.Value(t, stats.ChecklistCompletion).Equal(0.5)
	})

	t.Run("no checklists yields zero not NaN", func(t *testing.T) {
		stats := model.ComputeBoardStats(board, cards[:2], nil)
		gt.Value(t, stats.ChecklistCompletion).Equal(0.0)
	})

	t.Run("wip breach reported when count reaches the limit", func(t *testing.T) {
		stats := model.ComputeBoardStats(board, cards, nil)

		gt.Array(t, stats.WIPBreaches).Length(1)
		gt.Value(t, stats.WIPBreaches[0].StageID).Equal(types.StageID("stage:30"))
		gt.Value(t, stats.WIPBreaches[0].Count).Equal(3)
		gt.Value(t, stats.WIPBreaches[0].Limit).Equal(1)
	})

	t.Run("tag usage covers all board tags", func(t *testing.T) {
		stats := model.ComputeBoardStats(board, cards, nil)
		gt.Value(t, stats.TagUsage["tag:bug"]).Equal(1)
		gt.Value(t, stats.TagUsage["tag:docs"]).Equal(0)
	})
}

func TestStagePolicy(t *testing.T) {
	t.Run("stage marked both initial and terminal is rejected", func(t *testing.T) {
		policy := &config.StagePolicy{
			InitialStageIDs:  []types.StageID{"stage:10"},
			TerminalStageIDs: []types.StageID{"stage:10"},
		}
		gt.Value(t, policy.Validate()).NotNil()
	})

	t.Run("duplicate ids rejected", func(t *testing.T) {
		policy := &config.StagePolicy{
			InitialStageIDs: []types.StageID{"stage:10", "stage:10"},
		}
		gt.Value(t, policy.Validate()).NotNil()
	})

	t.Run("disjoint sets pass", func(t *testing.T) {
		policy := &config.StagePolicy{
			InitialStageIDs:  []types.StageID{"stage:10"},
			TerminalStageIDs: []types.StageID{"stage:50"},
		}
		gt.NoError(t, policy.Validate())
	})
}
