package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/ipai-lab/taskboard/pkg/cli/config"
	httpctrl "github.com/ipai-lab/taskboard/pkg/controller/http"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
	"github.com/ipai-lab/taskboard/pkg/service/worker"
	"github.com/ipai-lab/taskboard/pkg/usecase"
	"github.com/ipai-lab/taskboard/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var boardPath string
	var syncBoardID string
	var syncInterval time.Duration
	var lenientMentions bool
	var repoCfg config.Repository
	var notifyCfg config.Notify
	var remoteCfg config.Remote

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("TASKBOARD_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "board-file",
			Usage:       "TOML board definition to seed on startup (stage policy included)",
			Sources:     cli.EnvVars("TASKBOARD_BOARD_FILE"),
			Destination: &boardPath,
		},
		&cli.StringFlag{
			Name:        "sync-board-id",
			Usage:       "Board to refresh periodically from the remote backend (requires --remote-url)",
			Sources:     cli.EnvVars("TASKBOARD_SYNC_BOARD_ID"),
			Destination: &syncBoardID,
		},
		&cli.DurationFlag{
			Name:        "sync-interval",
			Usage:       "Interval between remote board refreshes",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("TASKBOARD_SYNC_INTERVAL"),
			Destination: &syncInterval,
		},
		&cli.BoolFlag{
			Name:        "lenient-mentions",
			Usage:       "Keep unmatched mention emails with an unresolved marker instead of rejecting",
			Sources:     cli.EnvVars("TASKBOARD_LENIENT_MENTIONS"),
			Destination: &lenientMentions,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, remoteCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{}
			if lenientMentions {
				ucOpts = append(ucOpts, usecase.WithLenientMentions())
			}

			notifySvc, err := notifyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure notifications")
			}
			if notifySvc != nil {
				ucOpts = append(ucOpts, usecase.WithNotify(notifySvc))
				logging.Default().Info("Mention notifications enabled", "notify", &notifyCfg)
			}

			remoteSvc := remoteCfg.Configure()
			if remoteSvc != nil {
				ucOpts = append(ucOpts, usecase.WithRemote(remoteSvc))
				logging.Default().Info("Remote backend configured", "url", remoteCfg.BaseURL())
			}

			var boardFile *config.BoardFile
			if boardPath != "" {
				boardFile, err = config.LoadBoardFile(boardPath)
				if err != nil {
					return goerr.Wrap(err, "failed to load board file")
				}
				if policy := boardFile.StagePolicy(); policy != nil {
					ucOpts = append(ucOpts, usecase.WithStagePolicy(policy))
				}
			}

			uc := usecase.New(repo, ucOpts...)

			if boardFile != nil {
				if err := seedBoard(ctx, uc, boardFile); err != nil {
					return goerr.Wrap(err, "failed to seed board")
				}
			}

			var refreshWorker *worker.BoardRefreshWorker
			if syncBoardID != "" {
				if remoteSvc == nil {
					return goerr.New("sync-board-id requires remote-url")
				}
				refreshWorker = worker.NewBoardRefreshWorker(uc.Sync, types.BoardID(syncBoardID), syncInterval)
				if err := refreshWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start board refresh worker")
				}
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Stop the refresh worker before the listener so no
				// pull races the shutdown.
				if refreshWorker != nil {
					refreshWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
