package model

import (
	"time"

	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// Mention is a reference to a partner's email inside a comment.
// PartnerID is types.UnresolvedPartnerID when the email had no
// directory entry and lenient lookups were enabled.
type Mention struct {
	Email     string          `json:"email" firestore:"email"`
	PartnerID types.PartnerID `json:"partner_id" firestore:"partner_id"`
}

// Resolved reports whether the mention was matched to a directory entry
func (m Mention) Resolved() bool {
	return m.PartnerID != types.UnresolvedPartnerID
}

// ActivityMetadata carries display labels for tracked field changes.
// For stage changes OldValue/NewValue are human-readable stage names,
// not stage ids.
type ActivityMetadata struct {
	FieldName string `json:"field_name,omitempty" firestore:"field_name,omitempty"`
	OldValue  string `json:"old_value,omitempty" firestore:"old_value,omitempty"`
	NewValue  string `json:"new_value,omitempty" firestore:"new_value,omitempty"`
}

// Activity is an immutable, timestamped record of a comment or a
// tracked field change on a card (upstream mail.message). Records are
// append-only and keyed to a card.
type Activity struct {
	ID        types.ActivityID   `json:"event_id" firestore:"event_id"`
	CardID    types.CardID       `json:"card_id" firestore:"card_id"`
	Type      types.ActivityType `json:"type" firestore:"type"`
	Author    Partner            `json:"author" firestore:"author"`
	BodyMD    string             `json:"body_md,omitempty" firestore:"body_md,omitempty"`
	Mentions  []Mention          `json:"mentions,omitempty" firestore:"mentions,omitempty"`
	Metadata  *ActivityMetadata  `json:"metadata,omitempty" firestore:"metadata,omitempty"`
	CreatedAt time.Time          `json:"created_at" firestore:"created_at"`
}

// Clone returns a deep copy of the activity
func (a *Activity) Clone() *Activity {
	if a == nil {
		return nil
	}
	copied := *a
	if a.Mentions != nil {
		copied.Mentions = make([]Mention, len(a.Mentions))
		copy(copied.Mentions, a.Mentions)
	}
	if a.Metadata != nil {
		meta := *a.Metadata
		copied.Metadata = &meta
	}
	return &copied
}
