package cmd

import (
	"github.com/burstaudit/burstaudit/internal/contract"
	"github.com/burstaudit/burstaudit/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd exposes the pipeline over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an HTTP server for upload-and-download processing",
	Long: `Run burstaudit as an HTTP service. Clients POST an activity export to
/api/v1/process as a multipart upload and receive a per-group summary plus
a download link for the zipped reports.

Examples:
  # Listen on the default port
  burstaudit serve

  # Listen on a specific address and keep job archives in ./jobs
  burstaudit serve --listen :9090 --jobs-dir ./jobs`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		srv, err := server.NewServer(cfg, runStore)
		if err != nil {
			contract.LogFatal("Failed to start server", err)
		}
		if err := srv.ListenAndServe(); err != nil {
			contract.LogFatal("Server stopped", err)
		}
	},
}
