package model

import (
	"sort"

	"github.com/ipai-lab/taskboard/pkg/domain/model/config"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// WIPBreach is a structured signal that a stage holds at least as many
// cards as its advisory WIP limit. Breaches are reported, never
// enforced; callers decide whether to warn or block.
type WIPBreach struct {
	StageID types.StageID `json:"stage_id"`
	Count   int           `json:"count"`
	Limit   int           `json:"limit"`
}

// OwnerCount is a per-owner card count. A card with two owners counts
// once for each of them.
type OwnerCount struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CompletionStats buckets cards by the configured stage policy
type CompletionStats struct {
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	NotStarted int `json:"not_started"`
}

// BoardStats holds read-only statistics over a board's card collection
type BoardStats struct {
	TotalCards          int                    `json:"total_cards"`
	CardsByStage        map[types.StageID]int  `json:"cards_by_stage"`
	CardsByPriority     map[types.Priority]int `json:"cards_by_priority"`
	CardsByOwner        []OwnerCount           `json:"cards_by_owner"`
	TagUsage            map[types.TagID]int    `json:"tag_usage"`
	Completion          CompletionStats        `json:"completion"`
	ChecklistCompletion float64                `json:"checklist_completion"`
	WIPBreaches         []WIPBreach            `json:"wip_breaches,omitempty"`
}

// DefaultStagePolicy derives a stage policy from the board's stage
// ordering: the first ordered stage is initial, the last is terminal.
// This mirrors the upstream dashboard behavior and is used only when
// no explicit policy is configured.
func DefaultStagePolicy(b *Board) *config.StagePolicy {
	stages := b.StagesInOrder()
	policy := &config.StagePolicy{}
	if len(stages) == 0 {
		return policy
	}
	policy.InitialStageIDs = []types.StageID{stages[0].ID}
	if len(stages) > 1 {
		policy.TerminalStageIDs = []types.StageID{stages[len(stages)-1].ID}
	}
	return policy
}

// ComputeBoardStats derives dashboard statistics from a card
// collection. It never mutates its inputs. A nil policy falls back to
// DefaultStagePolicy.
func ComputeBoardStats(board *Board, cards []*Card, policy *config.StagePolicy) *BoardStats {
	if policy == nil {
		policy = DefaultStagePolicy(board)
	}

	stats := &BoardStats{
		TotalCards:      len(cards),
		CardsByStage:    make(map[types.StageID]int, len(board.Stages)),
		CardsByPriority: make(map[types.Priority]int, len(types.AllPriorities())),
		TagUsage:        make(map[types.TagID]int, len(board.Tags)),
	}

	// Every board stage appears in the per-stage map, including empty
	// ones, so the sum of counts always equals the total card count.
	for _, stage := range board.Stages {
		stats.CardsByStage[stage.ID] = 0
	}
	for _, p := range types.AllPriorities() {
		stats.CardsByPriority[p] = 0
	}
	for _, tag := range board.Tags {
		stats.TagUsage[tag.ID] = 0
	}

	ownerCounts := make(map[string]*OwnerCount)
	var checklistSum float64
	var checklistCards int

	for _, c := range cards {
		stats.CardsByStage[c.StageID]++
		stats.CardsByPriority[c.Priority.Normalize()]++

		for _, tagID := range c.Tags {
			stats.TagUsage[tagID]++
		}

		for _, owner := range c.Owners {
			oc, ok := ownerCounts[owner.Email]
			if !ok {
				oc = &OwnerCount{Email: owner.Email, Name: owner.Name}
				ownerCounts[owner.Email] = oc
			}
			oc.Count++
		}

		if done, total := c.ChecklistProgress(); total > 0 {
			checklistSum += float64(done) / float64(total)
			checklistCards++
		}

		switch {
		case policy.IsTerminal(c.StageID):
			stats.Completion.Completed++
		case policy.IsInitial(c.StageID):
			stats.Completion.NotStarted++
		default:
			stats.Completion.InProgress++
		}
	}

	// Average over checklist-bearing cards only; a denominator of 1
	// keeps the result at 0 when no card has a checklist.
	denom := checklistCards
	if denom == 0 {
		denom = 1
	}
	stats.ChecklistCompletion = checklistSum / float64(denom)

	stats.CardsByOwner = make([]OwnerCount, 0, len(ownerCounts))
	for _, oc := range ownerCounts {
		stats.CardsByOwner = append(stats.CardsByOwner, *oc)
	}
	sort.Slice(stats.CardsByOwner, func(i, j int) bool {
		return stats.CardsByOwner[i].Email < stats.CardsByOwner[j].Email
	})

	for _, stage := range board.Stages {
		if stage.WIPLimit == nil {
			continue
		}
		if count := stats.CardsByStage[stage.ID]; count >= *stage.WIPLimit {
			stats.WIPBreaches = append(stats.WIPBreaches, WIPBreach{
				StageID: stage.ID,
				Count:   count,
				Limit:   *stage.WIPLimit,
			})
		}
	}
	sort.Slice(stats.WIPBreaches, func(i, j int) bool {
		return stats.WIPBreaches[i].StageID < stats.WIPBreaches[j].StageID
	})

	return stats
}
