package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/ipai-lab/taskboard/pkg/cli/config"
	"github.com/ipai-lab/taskboard/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var boardPath string

	return &cli.Command{
		Name:  "validate",
		Usage: "Validate a TOML board definition without touching a repository",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "board-file",
				Usage:       "TOML board definition to validate",
				Required:    true,
				Sources:     cli.EnvVars("TASKBOARD_BOARD_FILE"),
				Destination: &boardPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			boardFile, err := config.LoadBoardFile(boardPath)
			if err != nil {
				return goerr.Wrap(err, "validation failed", goerr.V("path", boardPath))
			}

			logging.Default().Info("Board file is valid",
				"path", boardPath,
				"board_id", boardFile.Board.ID,
				"stages", len(boardFile.Board.Stages),
				"tags", len(boardFile.Board.Tags),
				"members", len(boardFile.Board.Members),
				"cards", len(boardFile.Cards),
				"has_policy", boardFile.Policy != nil,
			)
			return nil
		},
	}
}
