package model

import (
	"sort"
	"time"

	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// Stage is an ordered pipeline step within a board (upstream
// project.task.type). Ordering is by ascending Order, not by slice
// position.
type Stage struct {
	ID       types.StageID `json:"stage_id" firestore:"stage_id"`
	Name     string        `json:"name" firestore:"name"`
	Order    int           `json:"order" firestore:"order"`
	WIPLimit *int          `json:"wip_limit" firestore:"wip_limit"`
	Fold     bool          `json:"fold,omitempty" firestore:"fold"`
}

// Tag is a board-scoped label (upstream project.tags)
type Tag struct {
	ID    types.TagID `json:"tag_id" firestore:"tag_id"`
	Name  string      `json:"name" firestore:"name"`
	Color string      `json:"color,omitempty" firestore:"color,omitempty"`
}

// Board is a workspace container of stages, tags and cards (upstream
// project.project). It owns the set of valid stages and tags for its
// cards.
type Board struct {
	ID          types.BoardID    `json:"board_id" firestore:"board_id"`
	Name        string           `json:"name" firestore:"name"`
	Owner       Partner          `json:"owner" firestore:"owner"`
	Visibility  types.Visibility `json:"visibility" firestore:"visibility"`
	Members     []BoardMember    `json:"members" firestore:"members"`
	Stages      []Stage          `json:"stages" firestore:"stages"`
	Tags        []Tag            `json:"tags" firestore:"tags"`
	Description string           `json:"description,omitempty" firestore:"description,omitempty"`
	CreatedAt   time.Time        `json:"created_at" firestore:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" firestore:"updated_at"`
}

// Stage returns the stage with the given ID, or nil if the board does
// not own such a stage.
func (b *Board) Stage(id types.StageID) *Stage {
	for i := range b.Stages {
		if b.Stages[i].ID == id {
			return &b.Stages[i]
		}
	}
	return nil
}

// HasTag reports whether the board owns the given tag
func (b *Board) HasTag(id types.TagID) bool {
	for _, t := range b.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// StagesInOrder returns the board's stages sorted by ascending Order
func (b *Board) StagesInOrder() []Stage {
	stages := make([]Stage, len(b.Stages))
	copy(stages, b.Stages)
	sort.SliceStable(stages, func(i, j int) bool {
		return stages[i].Order < stages[j].Order
	})
	return stages
}

// Member returns the board member with the given partner ID, or nil
func (b *Board) Member(id types.PartnerID) *BoardMember {
	for i := range b.Members {
		if b.Members[i].Partner.ID == id {
			return &b.Members[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	copied := *b
	copied.Members = make([]BoardMember, len(b.Members))
	copy(copied.Members, b.Members)
	copied.Stages = make([]Stage, len(b.Stages))
	for i, s := range b.Stages {
		copied.Stages[i] = s
		if s.WIPLimit != nil {
			limit := *s.WIPLimit
			copied.Stages[i].WIPLimit = &limit
		}
	}
	copied.Tags = make([]Tag, len(b.Tags))
	copy(copied.Tags, b.Tags)
	return &copied
}
