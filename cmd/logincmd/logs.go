package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/logincmd/internal/app"
	"github.com/MrSnakeDoc/logincmd/internal/auditlog"
	"github.com/MrSnakeDoc/logincmd/internal/config"
	"github.com/MrSnakeDoc/logincmd/internal/domain"
)

var (
	logsSearch string
	logsStatus string
	logsLimit  int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the persisted command history",
	Args:  cobra.NoArgs,
	RunE:  runLogs,
}

func init() {
	logsCmd.Flags().StringVarP(&logsSearch, "search", "s", "", "case-insensitive match on command text or message")
	logsCmd.Flags().StringVar(&logsStatus, "status", "", "only entries with this status (Pending, Sent, Skipped, Error)")
	logsCmd.Flags().IntVarP(&logsLimit, "limit", "n", 50, "show at most the newest N entries (0 = all)")
}

func runLogs(cmd *cobra.Command, args []string) error {
	q := auditlog.Query{Search: logsSearch, Limit: logsLimit}
	if logsStatus != "" {
		st, err := domain.ParseStatus(logsStatus)
		if err != nil {
			return err
		}
		q.Status = st
	}

	cfg := config.Load()
	log := cliLogger(cfg)

	core, err := app.OpenCore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer core.Close()

	entries := core.Logs.Filter(q)
	printLogs(cmd.OutOrStdout(), entries, core.Logs.Len(), time.Now())
	return nil
}

func printLogs(w io.Writer, entries []domain.LogEntry, total int, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "no matching entries (%s stored)\n", humanize.Comma(int64(total)))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tCHARACTER\tSTATUS\tCOMMAND\tMESSAGE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			humanize.RelTime(e.Timestamp, now, "ago", "from now"),
			e.CharacterKey, e.Status, e.CommandText, e.Message)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%s of %s entries\n", humanize.Comma(int64(len(entries))), humanize.Comma(int64(total)))
}
