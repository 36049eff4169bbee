package cli

import (
	"github.com/spf13/cobra"

	"github.com/chromash/chromash/pkg/server"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the theme API over HTTP",
		Long: `Serve a small JSON API for status bars and scripts:

  GET    /healthz
  GET    /theme
  GET    /presets
  POST   /color/{hex}?mode=dark&scheme=expressive
  POST   /presets/{name}/apply
  DELETE /presets/{name}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, cfg, cc, err := c.newManager(ctx)
			if err != nil {
				return err
			}
			defer cc.Close()

			if addr == "" {
				addr = cfg.Server.Addr
			}
			return server.New(m, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:7377)")
	return cmd
}
