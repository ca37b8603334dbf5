package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	domainConfig "github.com/ipai-lab/taskboard/pkg/domain/model/config"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// BoardFile is a TOML board definition used to seed or validate a
// local collection: one board with its stages, tags and members, an
// optional partner directory, optional cards and an optional stage
// policy.
type BoardFile struct {
	Board    BoardSection   `toml:"board"`
	Partners []PartnerEntry `toml:"partner"`
	Cards    []CardEntry    `toml:"card"`
	Policy   *PolicySection `toml:"policy"`
}

// BoardSection describes the board itself
type BoardSection struct {
	ID          string        `toml:"id"`
	Name        string        `toml:"name"`
	Visibility  string        `toml:"visibility"`
	Description string        `toml:"description"`
	Owner       PartnerEntry  `toml:"owner"`
	Members     []MemberEntry `toml:"members"`
	Stages      []StageEntry  `toml:"stages"`
	Tags        []TagEntry    `toml:"tags"`
}

// PartnerEntry describes a directory identity
type PartnerEntry struct {
	ID    int64  `toml:"id"`
	Email string `toml:"email"`
	Name  string `toml:"name"`
}

// MemberEntry is a partner with a board role
type MemberEntry struct {
	PartnerEntry
	Role string `toml:"role"`
}

// StageEntry describes one pipeline stage
type StageEntry struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Order    int    `toml:"order"`
	WIPLimit int    `toml:"wip_limit"`
	Fold     bool   `toml:"fold"`
}

// TagEntry describes one board tag
type TagEntry struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Color string `toml:"color"`
}

// CardEntry describes one seed card. Owners reference partner emails.
type CardEntry struct {
	ID            string   `toml:"id"`
	StageID       string   `toml:"stage_id"`
	Title         string   `toml:"title"`
	DescriptionMD string   `toml:"description_md"`
	Priority      string   `toml:"priority"`
	DueDate       string   `toml:"due_date"`
	Owners        []string `toml:"owners"`
	Tags          []string `toml:"tags"`
}

// PolicySection marks initial and terminal stage ids for completion
// reporting.
type PolicySection struct {
	InitialStages  []string `toml:"initial_stages"`
	TerminalStages []string `toml:"terminal_stages"`
}

// Validate checks the board definition for structural and referential
// consistency.
func (f *BoardFile) Validate() error {
	if f.Board.ID == "" {
		return goerr.New("board id is required")
	}
	if f.Board.Name == "" {
		return goerr.New("board name is required")
	}
	if f.Board.Owner.ID == 0 {
		return goerr.New("board owner is required")
	}
	if len(f.Board.Stages) == 0 {
		return goerr.New("board needs at least one stage")
	}
	if len(f.Board.Members) == 0 {
		return goerr.New("board needs at least one member")
	}

	if f.Board.Visibility != "" {
		if _, err := types.ParseVisibility(f.Board.Visibility); err != nil {
			return goerr.Wrap(err, "invalid board visibility")
		}
	}

	stageIDs := make(map[string]bool, len(f.Board.Stages))
	for _, s := range f.Board.Stages {
		if s.ID == "" || s.Name == "" {
			return goerr.New("stage id and name are required", goerr.V("stage", s))
		}
		if stageIDs[s.ID] {
			return goerr.New("duplicate stage id", goerr.V("stage_id", s.ID))
		}
		stageIDs[s.ID] = true
	}

	tagIDs := make(map[string]bool, len(f.Board.Tags))
	for _, t := range f.Board.Tags {
		if t.ID == "" || t.Name == "" {
			return goerr.New("tag id and name are required", goerr.V("tag", t))
		}
		if tagIDs[t.ID] {
			return goerr.New("duplicate tag id", goerr.V("tag_id", t.ID))
		}
		tagIDs[t.ID] = true
	}

	for _, m := range f.Board.Members {
		if _, err := types.ParseRole(m.Role); err != nil {
			return goerr.Wrap(err, "invalid member role", goerr.V("email", m.Email))
		}
	}

	emails := make(map[string]bool, len(f.Partners))
	for _, p := range f.Partners {
		if p.ID == 0 || p.Email == "" {
			return goerr.New("partner id and email are required", goerr.V("partner", p))
		}
		if emails[p.Email] {
			return goerr.New("duplicate partner email", goerr.V("email", p.Email))
		}
		emails[p.Email] = true
	}

	for _, c := range f.Cards {
		if c.Title == "" {
			return goerr.New("card title is required", goerr.V("card_id", c.ID))
		}
		if !stageIDs[c.StageID] {
			return goerr.New("card references unknown stage", goerr.V("card_id", c.ID), goerr.V("stage_id", c.StageID))
		}
		for _, tagID := range c.Tags {
			if !tagIDs[tagID] {
				return goerr.New("card references unknown tag", goerr.V("card_id", c.ID), goerr.V("tag_id", tagID))
			}
		}
		if c.Priority != "" {
			if _, err := types.ParsePriority(c.Priority); err != nil {
				return goerr.Wrap(err, "invalid card priority", goerr.V("card_id", c.ID))
			}
		}
		if c.DueDate != "" {
			if _, err := time.Parse("2006-01-02", c.DueDate); err != nil {
				return goerr.Wrap(err, "invalid card due date", goerr.V("card_id", c.ID))
			}
		}
	}

	if f.Policy != nil {
		for _, id := range append(f.Policy.InitialStages, f.Policy.TerminalStages...) {
			if !stageIDs[id] {
				return goerr.New("policy references unknown stage", goerr.V("stage_id", id))
			}
		}
		if err := f.StagePolicy().Validate(); err != nil {
			return goerr.Wrap(err, "invalid stage policy")
		}
	}

	return nil
}

// ToBoard converts the definition to a domain board
func (f *BoardFile) ToBoard() *model.Board {
	board := &model.Board{
		ID:          types.BoardID(f.Board.ID),
		Name:        f.Board.Name,
		Owner:       f.Board.Owner.toPartner(),
		Visibility:  types.Visibility(f.Board.Visibility),
		Description: f.Board.Description,
	}
	if board.Visibility == "" {
		board.Visibility = types.VisibilityTeam
	}

	for _, m := range f.Board.Members {
		board.Members = append(board.Members, model.BoardMember{
			Partner: m.toPartner(),
			Role:    types.Role(m.Role),
		})
	}
	for _, s := range f.Board.Stages {
		stage := model.Stage{
			ID:    types.StageID(s.ID),
			Name:  s.Name,
			Order: s.Order,
			Fold:  s.Fold,
		}
		if s.WIPLimit > 0 {
			limit := s.WIPLimit
			stage.WIPLimit = &limit
		}
		board.Stages = append(board.Stages, stage)
	}
	for _, t := range f.Board.Tags {
		board.Tags = append(board.Tags, model.Tag{
			ID:    types.TagID(t.ID),
			Name:  t.Name,
			Color: t.Color,
		})
	}
	return board
}

// ToPartners converts the partner directory entries, including the
// board owner and members.
func (f *BoardFile) ToPartners() []*model.Partner {
	seen := make(map[int64]bool)
	var partners []*model.Partner

	add := func(e PartnerEntry) {
		if e.ID == 0 || seen[e.ID] {
			return
		}
		seen[e.ID] = true
		p := e.toPartner()
		partners = append(partners, &p)
	}

	add(f.Board.Owner)
	for _, m := range f.Board.Members {
		add(m.PartnerEntry)
	}
	for _, p := range f.Partners {
		add(p)
	}
	return partners
}

// ToCards converts the seed cards. Owner emails are resolved against
// the file's own partner entries; unknown emails are dropped here and
// reported by Validate beforehand.
func (f *BoardFile) ToCards(now time.Time) []*model.Card {
	byEmail := make(map[string]model.Partner)
	for _, p := range f.ToPartners() {
		byEmail[p.Email] = *p
	}

	cards := make([]*model.Card, 0, len(f.Cards))
	for _, c := range f.Cards {
		card := &model.Card{
			ID:            types.CardID(c.ID),
			BoardID:       types.BoardID(f.Board.ID),
			StageID:       types.StageID(c.StageID),
			Title:         c.Title,
			DescriptionMD: c.DescriptionMD,
			Priority:      types.Priority(c.Priority).Normalize(),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if card.ID == "" {
			card.ID = types.NewCardID()
		}
		if c.DueDate != "" {
			if due, err := time.Parse("2006-01-02", c.DueDate); err == nil {
				card.DueDate = &due
			}
		}
		for _, email := range c.Owners {
			if p, ok := byEmail[email]; ok {
				card.Owners = append(card.Owners, p)
			}
		}
		for _, tagID := range c.Tags {
			card.Tags = append(card.Tags, types.TagID(tagID))
		}
		cards = append(cards, card)
	}
	return cards
}

// StagePolicy converts the policy section; nil when absent
func (f *BoardFile) StagePolicy() *domainConfig.StagePolicy {
	if f.Policy == nil {
		return nil
	}
	policy := &domainConfig.StagePolicy{}
	for _, id := range f.Policy.InitialStages {
		policy.InitialStageIDs = append(policy.InitialStageIDs, types.StageID(id))
	}
	for _, id := range f.Policy.TerminalStages {
		policy.TerminalStageIDs = append(policy.TerminalStageIDs, types.StageID(id))
	}
	return policy
}

func (e PartnerEntry) toPartner() model.Partner {
	return model.Partner{
		ID:    types.PartnerID(e.ID),
		Email: e.Email,
		Name:  e.Name,
	}
}

// LoadBoardFile loads and validates a TOML board definition
func LoadBoardFile(path string) (*BoardFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read board file", goerr.V("path", path))
	}

	var file BoardFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML board file", goerr.V("path", path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "board file validation failed", goerr.V("path", path))
	}

	return &file, nil
}
