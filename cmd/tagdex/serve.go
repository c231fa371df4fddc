package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akeefe/tagdex/internal/checkpoint"
	"github.com/akeefe/tagdex/internal/mcp"
	"github.com/akeefe/tagdex/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start a Model Context Protocol server that exposes indexing as tools
(index_document, get_status, reset_checkpoint) over stdio. Intended to be
launched by an MCP client, not run interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// stdout carries the MCP protocol, so all logging goes to stderr
		log.SetOutput(os.Stderr)
		log.Printf("tagdex MCP server v%s starting (build: %s, driver: %s)",
			version.Version, checkpoint.BuildMode, checkpoint.DriverName)

		srv, err := mcp.NewServer(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		errChan := make(chan error, 1)
		go func() {
			log.Println("MCP server ready, listening on stdio...")
			errChan <- srv.Serve(ctx)
		}()

		select {
		case sig := <-sigChan:
			log.Printf("received signal %v, shutting down", sig)
			return nil
		case err := <-errChan:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
