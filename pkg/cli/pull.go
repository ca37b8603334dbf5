package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/ipai-lab/taskboard/pkg/cli/config"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
	"github.com/ipai-lab/taskboard/pkg/usecase"
	"github.com/ipai-lab/taskboard/pkg/utils/logging"
)

func cmdPull() *cli.Command {
	var boardID string
	var repoCfg config.Repository
	var remoteCfg config.Remote

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "board-id",
			Usage:       "Board to synchronize from the remote backend (e.g. project:1)",
			Required:    true,
			Sources:     cli.EnvVars("TASKBOARD_BOARD_ID"),
			Destination: &boardID,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, remoteCfg.Flags()...)

	return &cli.Command{
		Name:  "pull",
		Usage: "Replace the local collection with the remote board state",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			remoteSvc := remoteCfg.Configure()
			if remoteSvc == nil {
				return goerr.New("remote-url is required for pull")
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

			uc := usecase.New(repo, usecase.WithRemote(remoteSvc))
			if err := uc.Sync.PullBoard(ctx, types.BoardID(boardID)); err != nil {
				return goerr.Wrap(err, "pull failed", goerr.V("board_id", boardID))
			}

			return nil
		},
	}
}
