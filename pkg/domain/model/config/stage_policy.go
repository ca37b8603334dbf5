package config

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// StagePolicy marks which stage ids are semantically initial
// ("not started") and terminal ("done") for completion reporting.
// It replaces the upstream assumption that the first and last stages
// of a linear 5-stage pipeline play those roles.
type StagePolicy struct {
	InitialStageIDs  []types.StageID
	TerminalStageIDs []types.StageID
}

// Validate checks that the policy does not mark a stage as both
// initial and terminal.
func (p *StagePolicy) Validate() error {
	initial := make(map[types.StageID]bool, len(p.InitialStageIDs))
	for _, id := range p.InitialStageIDs {
		if initial[id] {
			return goerr.New("duplicate initial stage ID", goerr.V("stage_id", id))
		}
		initial[id] = true
	}
	seen := make(map[types.StageID]bool, len(p.TerminalStageIDs))
	for _, id := range p.TerminalStageIDs {
		if seen[id] {
			return goerr.New("duplicate terminal stage ID", goerr.V("stage_id", id))
		}
		seen[id] = true
		if initial[id] {
			return goerr.New("stage ID marked both initial and terminal", goerr.V("stage_id", id))
		}
	}
	return nil
}

// IsInitial reports whether the stage counts as "not started"
func (p *StagePolicy) IsInitial(id types.StageID) bool {
	for _, s := range p.InitialStageIDs {
		if s == id {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the stage counts as "done"
func (p *StagePolicy) IsTerminal(id types.StageID) bool {
	for _, s := range p.TerminalStageIDs {
		if s == id {
			return true
		}
	}
	return false
}
