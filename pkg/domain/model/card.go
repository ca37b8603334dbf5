package model

import (
	"time"

	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// ChecklistItem is an ordered, checkable item embedded in a card
type ChecklistItem struct {
	ID    types.ChecklistItemID `json:"id" firestore:"id"`
	Text  string                `json:"text" firestore:"text"`
	Done  bool                  `json:"done" firestore:"done"`
	Order int                   `json:"order,omitempty" firestore:"order"`
}

// Dependency is a directional, typed edge from the owning card to
// another card. A blocked_by edge on card X referencing Y does not
// require Y to declare a mirrored blocks edge.
type Dependency struct {
	Type   types.DependencyType `json:"type" firestore:"type"`
	CardID types.CardID         `json:"task_id" firestore:"task_id"`
}

// Card is the addressable unit of work (upstream project.task)
type Card struct {
	ID            types.CardID    `json:"card_id" firestore:"card_id"`
	BoardID       types.BoardID   `json:"board_id" firestore:"board_id"`
	StageID       types.StageID   `json:"stage_id" firestore:"stage_id"`
	Title         string          `json:"title" firestore:"title"`
	DescriptionMD string          `json:"description_md,omitempty" firestore:"description_md,omitempty"`
	Priority      types.Priority  `json:"priority" firestore:"priority"`
	DueDate       *time.Time      `json:"due_date" firestore:"due_date"`
	Owners        []Partner       `json:"owners" firestore:"owners"`
	Watchers      []Partner       `json:"watchers" firestore:"watchers"`
	Tags          []types.TagID   `json:"tags" firestore:"tags"`
	ParentID      *types.CardID   `json:"parent_id" firestore:"parent_id"`
	SubtaskIDs    []types.CardID  `json:"subtask_ids" firestore:"subtask_ids"`
	Checklist     []ChecklistItem `json:"checklist,omitempty" firestore:"checklist,omitempty"`
	Dependencies  []Dependency    `json:"dependencies,omitempty" firestore:"dependencies,omitempty"`
	Sequence      int             `json:"sequence,omitempty" firestore:"sequence"`
	CreatedAt     time.Time       `json:"created_at" firestore:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" firestore:"updated_at"`
}

// HasTag reports whether the card carries the given tag
func (c *Card) HasTag(id types.TagID) bool {
	for _, t := range c.Tags {
		if t == id {
			return true
		}
	}
	return false
}

// OwnedBy reports whether any of the card's owners has the given email
func (c *Card) OwnedBy(email string) bool {
	for _, o := range c.Owners {
		if o.Email == email {
			return true
		}
	}
	return false
}

// ChecklistProgress returns done and total checklist item counts
func (c *Card) ChecklistProgress() (done, total int) {
	for _, item := range c.Checklist {
		total++
		if item.Done {
			done++
		}
	}
	return done, total
}

// Clone returns a deep copy of the card
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	copied := *c
	if c.DueDate != nil {
		due := *c.DueDate
		copied.DueDate = &due
	}
	if c.ParentID != nil {
		parent := *c.ParentID
		copied.ParentID = &parent
	}
	copied.Owners = make([]Partner, len(c.Owners))
	copy(copied.Owners, c.Owners)
	copied.Watchers = make([]Partner, len(c.Watchers))
	copy(copied.Watchers, c.Watchers)
	copied.Tags = make([]types.TagID, len(c.Tags))
	copy(copied.Tags, c.Tags)
	copied.SubtaskIDs = make([]types.CardID, len(c.SubtaskIDs))
	copy(copied.SubtaskIDs, c.SubtaskIDs)
	if c.Checklist != nil {
		copied.Checklist = make([]ChecklistItem, len(c.Checklist))
		copy(copied.Checklist, c.Checklist)
	}
	if c.Dependencies != nil {
		copied.Dependencies = make([]Dependency, len(c.Dependencies))
		copy(copied.Dependencies, c.Dependencies)
	}
	return &copied
}
