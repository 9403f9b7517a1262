package commands

import (
	"encoding/json"
	"fmt"
	"leonardo-backend/lib/serviceutil"
	"leonardo-backend/services/timetable"
	"os"

	"github.com/spf13/cobra"
)

var snapshotClass string
var snapshotJson bool
var snapshotRemote string

func init() {
	snapshotCmd.Flags().StringVar(&snapshotClass, "class", timetable.NoFilter, "Only show entries of this class.")
	snapshotCmd.Flags().BoolVar(&snapshotJson, "json", false, "Print the snapshot as JSON.")
	snapshotCmd.Flags().StringVar(&snapshotRemote, "remote", "", "Base url of a running leonardo-server to ask instead of the site.")
	rootCmd.AddCommand(snapshotCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [--class <class>] [--json] [--remote <url>]",
	Short: "Fetches the current timetable and prints it.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		snapshot, err := fetchSnapshot(cmd.Context(), cfg, snapshotRemote, snapshotClass)
		if err != nil {
			serviceutil.Fatal("failed to fetch snapshot", err)
		}

		if snapshotJson {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			err := encoder.Encode(snapshot)
			if err != nil {
				serviceutil.Fatal("failed to encode snapshot", err)
			}
			return
		}

		renderSnapshot(os.Stdout, snapshot)

		if len(snapshot.Data) > 0 || snapshotClass == timetable.NoFilter {
			return
		}
		all, err := fetchSnapshot(cmd.Context(), cfg, snapshotRemote, timetable.NoFilter)
		if err != nil {
			return
		}
		suggestions := timetable.SuggestClasses(all, snapshotClass, 3)
		if len(suggestions) == 0 {
			return
		}
		fmt.Fprintf(os.Stderr, "no entries for '%s', did you mean:\n", snapshotClass)
		for _, s := range suggestions {
			fmt.Fprintf(os.Stderr, "  %s\n", s.Class)
		}
	},
}
