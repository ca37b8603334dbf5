package types

import (
	"strings"

	"github.com/google/uuid"
)

// Entity identifiers follow the upstream convention "<model>:<id>",
// e.g. "project:42", "task:9001". Locally generated identifiers use a
// UUID suffix instead of a numeric one; the prefix is what matters.

// BoardID identifies a board (upstream project.project)
type BoardID string

// StageID identifies a stage (upstream project.task.type)
type StageID string

// TagID identifies a tag (upstream project.tags)
type TagID string

// CardID identifies a card (upstream project.task)
type CardID string

// ActivityID identifies an activity record (upstream mail.message)
type ActivityID string

// ChecklistItemID identifies a checklist item within a card
type ChecklistItemID string

// PartnerID is the upstream numeric partner identifier (res.partner.id)
type PartnerID int64

// UnresolvedPartnerID is the sentinel used when a mention email has no
// directory entry and lenient lookups are enabled.
const UnresolvedPartnerID PartnerID = 0

const (
	boardIDPrefix    = "project:"
	stageIDPrefix    = "stage:"
	tagIDPrefix      = "tag:"
	cardIDPrefix     = "task:"
	activityIDPrefix = "msg:"
)

// NewCardID generates a new unique card identifier
func NewCardID() CardID {
	return CardID(cardIDPrefix + uuid.NewString())
}

// NewActivityID generates a new unique activity identifier
func NewActivityID() ActivityID {
	return ActivityID(activityIDPrefix + uuid.NewString())
}

// NewChecklistItemID generates a new unique checklist item identifier
func NewChecklistItemID() ChecklistItemID {
	return ChecklistItemID(uuid.NewString())
}

func (id BoardID) String() string    { return string(id) }
func (id StageID) String() string    { return string(id) }
func (id TagID) String() string      { return string(id) }
func (id CardID) String() string     { return string(id) }
func (id ActivityID) String() string { return string(id) }

// IsValid checks the "<model>:<id>" shape of a board ID
func (id BoardID) IsValid() bool { return hasIDShape(string(id), boardIDPrefix) }

// IsValid checks the "<model>:<id>" shape of a stage ID
func (id StageID) IsValid() bool { return hasIDShape(string(id), stageIDPrefix) }

// IsValid checks the "<model>:<id>" shape of a tag ID
func (id TagID) IsValid() bool { return hasIDShape(string(id), tagIDPrefix) }

// IsValid checks the "<model>:<id>" shape of a card ID
func (id CardID) IsValid() bool { return hasIDShape(string(id), cardIDPrefix) }

// IsValid checks the "<model>:<id>" shape of an activity ID
func (id ActivityID) IsValid() bool { return hasIDShape(string(id), activityIDPrefix) }

func hasIDShape(s, prefix string) bool {
	return strings.HasPrefix(s, prefix) && len(s) > len(prefix)
}
