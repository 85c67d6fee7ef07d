package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-skip/internal/server"
)

func newServeCmd(verbose *bool) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the analysis API over HTTP",
		Example: `  vibe-skip serve --listen :8080`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			svc, closer, err := newService(logger)
			if err != nil {
				return err
			}
			defer closer()

			addr := listen
			if addr == "" {
				addr = viper.GetString("server.listen")
			}
			return server.NewServer(svc, logger).Run(addr)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from server.listen)")
	return cmd
}
