package usecase

import (
	"time"

	"github.com/ipai-lab/taskboard/pkg/domain/interfaces"
	"github.com/ipai-lab/taskboard/pkg/domain/model/config"
	"github.com/ipai-lab/taskboard/pkg/service/notify"
	"github.com/ipai-lab/taskboard/pkg/service/remote"
)

type UseCases struct {
	repo            interfaces.Repository
	stagePolicy     *config.StagePolicy
	notifyService   notify.Service
	remoteService   remote.Service
	now             func() time.Time
	lenientMentions bool

	Board   *BoardUseCase
	Card    *CardUseCase
	Comment *CommentUseCase
	Stats   *StatsUseCase
	Sync    *SyncUseCase
}

type Option func(*UseCases)

// WithStagePolicy sets an explicit completion policy. Without it the
// first and last ordered stages of each board play the initial and
// terminal roles.
func WithStagePolicy(policy *config.StagePolicy) Option {
	return func(uc *UseCases) {
		uc.stagePolicy = policy
	}
}

// WithNotify enables mention notifications
func WithNotify(svc notify.Service) Option {
	return func(uc *UseCases) {
		uc.notifyService = svc
	}
}

// WithRemote enables synchronization against the backend authority
func WithRemote(svc remote.Service) Option {
	return func(uc *UseCases) {
		uc.remoteService = svc
	}
}

// WithClock replaces the time source, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithLenientMentions records unmatched mention emails with an
// unresolved partner marker instead of rejecting the comment, and
// skips unknown owner emails on card creation.
func WithLenientMentions() Option {
	return func(uc *UseCases) {
		uc.lenientMentions = true
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Board = NewBoardUseCase(repo)
	uc.Card = NewCardUseCase(repo, uc.now, uc.lenientMentions)
	uc.Comment = NewCommentUseCase(repo, uc.notifyService, uc.now, uc.lenientMentions)
	uc.Stats = NewStatsUseCase(repo, uc.stagePolicy)
	uc.Sync = NewSyncUseCase(repo, uc.remoteService)

	return uc
}

// Repository exposes the underlying repository for administrative
// operations such as seeding.
func (uc *UseCases) Repository() interfaces.Repository {
	return uc.repo
}
