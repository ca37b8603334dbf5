package model

import (
	"strings"
	"time"

	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// CardFilter is a set of optional predicates over a card collection.
// Predicates are composed with logical AND; a zero filter matches
// every card.
type CardFilter struct {
	Stage      types.StageID
	Tag        types.TagID
	OwnerEmail string
	Query      string
	DueFrom    *time.Time
	DueTo      *time.Time
}

// IsZero reports whether no predicate is set
func (f CardFilter) IsZero() bool {
	return f.Stage == "" &&
		f.Tag == "" &&
		f.OwnerEmail == "" &&
		f.Query == "" &&
		f.DueFrom == nil &&
		f.DueTo == nil
}

// Match reports whether the card satisfies every set predicate
func (f CardFilter) Match(c *Card) bool {
	if f.Stage != "" && c.StageID != f.Stage {
		return false
	}
	if f.Tag != "" && !c.HasTag(f.Tag) {
		return false
	}
	if f.OwnerEmail != "" && !c.OwnedBy(f.OwnerEmail) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		title := strings.ToLower(c.Title)
		desc := strings.ToLower(c.DescriptionMD)
		if !strings.Contains(title, q) && !strings.Contains(desc, q) {
			return false
		}
	}
	if f.DueFrom != nil {
		if c.DueDate == nil || c.DueDate.Before(*f.DueFrom) {
			return false
		}
	}
	if f.DueTo != nil {
		if c.DueDate == nil || c.DueDate.After(*f.DueTo) {
			return false
		}
	}
	return true
}

// Apply returns the cards matching the filter, preserving the relative
// order of the input collection. The input is never mutated.
func (f CardFilter) Apply(cards []*Card) []*Card {
	if f.IsZero() {
		result := make([]*Card, len(cards))
		copy(result, cards)
		return result
	}

	result := make([]*Card, 0, len(cards))
	for _, c := range cards {
		if f.Match(c) {
			result = append(result, c)
		}
	}
	return result
}
