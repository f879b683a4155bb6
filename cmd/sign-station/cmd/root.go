package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mkropachev/sign-station/internal/service/server"
	"github.com/mkropachev/sign-station/internal/version"
)

// rootCmd represents the base command for running the signing server.
var rootCmd = &cobra.Command{
	Use:   "sign-station [listen-address]",
	Short: "Run the IPA signing and OTA distribution server.",
	Long: `Starts the HTTP server that accepts IPA uploads from allow-listed devices,
re-signs them with the external signer and serves them back over Apple's
over-the-air installation flow.

All settings come from the environment (PORT, PUBLIC_PATH, WORK_PATH,
OTAPROV_PATH, KEY_PATH, VALID_UDIDS and optional overrides); a .env file in
the working directory is honored. The listen address can be provided as an
argument to override the configured port (e.g., :9090, 0.0.0.0:8080).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		// Use listen address argument if provided, otherwise rely on config.
		var listenAddress string
		if len(args) > 0 {
			listenAddress = args[0]
		}

		return server.Run(ctx, &server.Options{
			ListenAddress: listenAddress,
		})
	},
}

// Execute runs the sign-station CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
