package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/apply-assistant/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local HTTP API",
	Long:  `Start an HTTP server on localhost that exposes the assistant's actions as REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (optional, defaults to the config port or 8787)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if cmd.Flags().Changed("port") {
		a.cfg.Port = servePort
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:           a.cfg.ResolvedPort(),
		UseBrowser:     a.cfg.UseBrowser,
		BrowserTimeout: a.cfg.BrowserTimeout(),
		Verbose:        a.cfg.Verbose,
	}, a.controller)

	return srv.Start()
}
