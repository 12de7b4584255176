package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"repolens.dev/repolens/internal/output"
	"repolens.dev/repolens/internal/panel"
)

// newServeCmd creates the serve command
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web panel: live status tree, diffs, and a commit composer",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}
			splog := output.NewSplog()

			server := panel.NewServer(repo, &panel.Config{Addr: addr})
			if err := server.Start(); err != nil {
				return err
			}

			watcher, err := panel.NewWatcher(repo, server.NotifyChange)
			if err != nil {
				splog.Warn("live refresh disabled: %v", err)
			} else {
				defer watcher.Close()
			}

			splog.Info("panel running at http://%s (press ctrl-c to stop)", server.Addr())

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig

			return server.Stop()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", panel.DefaultConfig().Addr, "Address to listen on (loopback recommended)")

	return cmd
}
