package commands

import (
	"fmt"
	"leonardo-backend/lib/serviceutil"
	"leonardo-backend/services/timetable"
	"leonardo-backend/services/watcher"
	"leonardo-backend/services/watcher/db"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyClass string
var historyLimit int
var historyDb string
var historyShow int64

func init() {
	historyCmd.Flags().StringVar(&historyClass, "class", timetable.NoFilter, "The class filter the watcher runs with.")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of snapshots to list.")
	historyCmd.Flags().StringVar(&historyDb, "db", "", "The watcher database, defaults to the one in the config.")
	historyCmd.Flags().Int64Var(&historyShow, "show", 0, "Print the snapshot with this id.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--class <class>] [--limit <n>] [--db <path/to/watcher.db>] [--show <id>]",
	Short: "Lists the snapshots recorded by the watcher.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if historyDb != "" {
			cfg.Watcher.Database.File = historyDb
		}

		database, err := cfg.Watcher.Database.OpenDB(db.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		entries, err := watcher.NewStore(database).History(cmd.Context(), historyClass, historyLimit)
		if err != nil {
			serviceutil.Fatal("failed to read history", err)
		}

		if historyShow != 0 {
			for _, entry := range entries {
				if entry.ID == historyShow {
					renderSnapshot(os.Stdout, entry.Snapshot)
					return
				}
			}
			serviceutil.Fatal("snapshot not found", fmt.Errorf("no snapshot %d in the last %d", historyShow, historyLimit))
		}

		t := newTable(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Recorded", "Infos", "Entries", "Hash"})
		for i, entry := range entries {
			t.AppendRow(table.Row{
				entry.ID,
				entry.CreatedAt.Format(time.ANSIC),
				len(entry.Snapshot.Infos),
				len(entry.Snapshot.Data),
				entry.Hash[:12],
			})
			if i+1 < len(entries) {
				changes := watcher.Diff(entries[i+1].Snapshot, entry.Snapshot)
				t.AppendRow(table.Row{"", fmt.Sprintf("+%d / -%d", len(changes.Added), len(changes.Removed))})
			}
		}
		t.Render()
	},
}
