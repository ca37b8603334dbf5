package model

import (
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// Partner is the base identity entity (upstream res.partner). Board
// members and card owners/watchers are partners.
type Partner struct {
	ID        types.PartnerID `json:"partner_id" firestore:"partner_id"`
	Email     string          `json:"email" firestore:"email"`
	Name      string          `json:"name" firestore:"name"`
	AvatarURL string          `json:"avatar_url,omitempty" firestore:"avatar_url,omitempty"`
}

// BoardMember is a partner with a role on a specific board
type BoardMember struct {
	Partner `firestore:"partner"`
	Role    types.Role `json:"role" firestore:"role"`
}
