package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkaran/silverdash/internal/api"
)

// cli carries the persistent flags shared by every command.
type cli struct {
	out     io.Writer
	server  string
	timeout time.Duration
	retries int
	verbose bool
}

func (c *cli) client() *api.Client {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(c.out, &slog.HandlerOptions{Level: level}))
	return api.NewClient(c.server,
		api.WithTimeout(c.timeout),
		api.WithRetries(c.retries, 500*time.Millisecond),
		api.WithLogger(logger),
	)
}

func (c *cli) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), c.timeout)
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:   "silverctl",
		Short: "Query a silverdash server",
		Long: `silverctl talks to the silverdash HTTP API.

It prices purchases, prints the price history and state tables, and
renders GeoJSON uploads into choropleth SVG files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&c.server, "server", "s", "http://localhost:8080", "silverdash base URL")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 30*time.Second, "request timeout")
	root.PersistentFlags().IntVar(&c.retries, "retries", 3, "retries for failed reads")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log retries")

	root.AddCommand(
		newHealthCmd(c),
		newVersionCmd(c),
		newQuoteCmd(c),
		newHistoryCmd(c),
		newStatesCmd(c),
		newReloadCmd(c),
		newJanuaryCmd(c),
		newMapCmd(c),
	)
	return root
}
