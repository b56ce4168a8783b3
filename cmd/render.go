package main

import (
	"context"
	"io"

	"github.com/Shugur-Network/podreader/internal/config"
	"github.com/Shugur-Network/podreader/internal/handler"
	"github.com/Shugur-Network/podreader/internal/identity"
	"github.com/Shugur-Network/podreader/internal/render"
	"github.com/Shugur-Network/podreader/internal/storage"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render the message page once to stdout as plain text",
		Long: `Render the message page once, with newlines instead of <br>, and exit.
A connection failure is printed like the page prints it. A failing query
exits non-zero without printing a partial page.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logToStderr(cfg); err != nil {
				return err
			}
			h := handler.New(config.NewEnv(), storage.NewMySQLDialer(cfg.Database), identity.NewResolver())
			return renderPage(cmd.Context(), cmd.OutOrStdout(), h)
		},
	}
}

func renderPage(ctx context.Context, w io.Writer, h *handler.Handler) error {
	page, err := h.Invoke(ctx, render.Text)
	if err != nil {
		return err
	}
	_, err = w.Write(page.Body)
	return err
}
