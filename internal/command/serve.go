package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/quillback/pointsboard/internal/app"
	"github.com/quillback/pointsboard/internal/server"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the points dashboard web app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, store, err := loadStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			if len(cfg.Users) == 0 {
				return fmt.Errorf("no users configured; add entries to the config's users list" +
					" (generate password hashes with `pointsboard user hash`)")
			}

			grp, ctx := errgroup.WithContext(cmd.Context())

			srv := app.New(cfg, logger, store)
			if _, err := server.Start(ctx, grp, logger, cfg.ListenAddress, srv); err != nil {
				return err
			}
			return grp.Wait()
		},
	}
}
