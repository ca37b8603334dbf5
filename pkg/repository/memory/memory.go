package memory

import (
	"github.com/ipai-lab/taskboard/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	board    *boardRepository
	card     *cardRepository
	activity *activityRepository
	partner  *partnerRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		board:    newBoardRepository(),
		card:     newCardRepository(),
		activity: newActivityRepository(),
		partner:  newPartnerRepository(),
	}
}

func (m *Memory) Board() interfaces.BoardRepository {
	return m.board
}

func (m *Memory) Card() interfaces.CardRepository {
	return m.card
}

func (m *Memory) Activity() interfaces.ActivityRepository {
	return m.activity
}

func (m *Memory) Partner() interfaces.PartnerRepository {
	return m.partner
}

func (m *Memory) Close() error {
	return nil
}
