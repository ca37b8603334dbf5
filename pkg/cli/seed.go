package cli

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/ipai-lab/taskboard/pkg/cli/config"
	"github.com/ipai-lab/taskboard/pkg/usecase"
	"github.com/ipai-lab/taskboard/pkg/utils/logging"
)

func cmdSeed() *cli.Command {
	var boardPath string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "board-file",
			Usage:       "TOML board definition to load",
			Required:    true,
			Sources:     cli.EnvVars("TASKBOARD_BOARD_FILE"),
			Destination: &boardPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load a TOML board definition into the repository",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			boardFile, err := config.LoadBoardFile(boardPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load board file")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo)
			if err := seedBoard(ctx, uc, boardFile); err != nil {
				return err
			}

			logging.Default().Info("Seed completed", "path", boardPath)
			return nil
		},
	}
}

// seedBoard loads a board definition into the repository: partner
// directory first so owner resolution works, then the board, then the
// cards in file order.
func seedBoard(ctx context.Context, uc *usecase.UseCases, boardFile *config.BoardFile) error {
	repo := uc.Repository()

	for _, partner := range boardFile.ToPartners() {
		if err := repo.Partner().Put(ctx, partner); err != nil {
			return goerr.Wrap(err, "failed to store partner", goerr.V("email", partner.Email))
		}
	}

	board := boardFile.ToBoard()
	if _, err := uc.Board.SaveBoard(ctx, board); err != nil {
		return goerr.Wrap(err, "failed to save board", goerr.V("board_id", board.ID))
	}

	now := time.Now()
	for _, card := range boardFile.ToCards(now) {
		if _, err := repo.Card().Create(ctx, card); err != nil {
			return goerr.Wrap(err, "failed to create card", goerr.V("card_id", card.ID))
		}
	}

	logging.Default().Info("Board seeded",
		"board_id", board.ID,
		"stages", len(board.Stages),
		"cards", len(boardFile.Cards),
	)
	return nil
}
