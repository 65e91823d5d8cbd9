package fauna

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/faunadata/fauna/internal/apiclient"
	"github.com/faunadata/fauna/internal/monitor"
	"github.com/faunadata/fauna/internal/ui"
	"github.com/spf13/cobra"
)

const (
	clearScreen       = "\033[H\033[2J"
	defaultRetryDelay = 2 * time.Second
)

func WatchCmd(newClient func() *apiclient.APIClient) *cobra.Command {
	var rows int
	var plain bool
	var noRetry bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow completed requests live",
		Long: `Follow the server's request log, the terminal counterpart of the /monitor page.

The newest request is shown first and only the most recent rows are kept.
With --plain every request is printed as one line instead of redrawing a table.
The stream reconnects after a connection loss unless --no-retry is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := &watcher{
				client:     newClient(),
				out:        cmd.OutOrStdout(),
				feed:       monitor.NewFeed(rows),
				plain:      plain,
				retry:      !noRetry,
				retryDelay: defaultRetryDelay,
			}
			return w.run(ctx)
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", monitor.DefaultFeedRows, "Number of rows to keep on screen")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print one line per request instead of a table")
	cmd.Flags().BoolVar(&noRetry, "no-retry", false, "Exit when the stream ends instead of reconnecting")
	return cmd
}

type watcher struct {
	client     *apiclient.APIClient
	out        io.Writer
	feed       *monitor.Feed
	plain      bool
	retry      bool
	retryDelay time.Duration
}

func (w *watcher) run(ctx context.Context) error {
	ui.Info("Following requests on %s", w.client.BaseURL())
	if !w.plain {
		w.render()
	}

	for {
		err := w.client.StreamRequestLogs(ctx, w.handle, func(err error) {
			ui.Warn("Skipping event: %v", err)
		})
		if ctx.Err() != nil {
			return nil
		}
		if !w.retry {
			return err
		}
		if err != nil {
			ui.Warn("Stream lost: %v, reconnecting in %s", err, w.retryDelay)
		} else {
			ui.Warn("Stream closed by server, reconnecting in %s", w.retryDelay)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(w.retryDelay):
		}
	}
}

func (w *watcher) handle(entry monitor.LogEntry) bool {
	w.feed.Push(entry)
	if w.plain {
		fmt.Fprintln(w.out, formatLine(entry))
	} else {
		w.render()
	}
	return true
}

func (w *watcher) render() {
	fmt.Fprint(w.out, clearScreen)
	fmt.Fprintln(w.out, ui.RenderFeed(w.feed.Entries()))
}

func formatLine(e monitor.LogEntry) string {
	status := ui.StatusStyle(e.Status).Render(strconv.Itoa(e.Status))
	return fmt.Sprintf("%s  %-6s %-40s %-15s %s  %s", e.Timestamp, e.Method, e.URL, e.Client, status, e.Latency)
}
