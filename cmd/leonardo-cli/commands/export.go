package commands

import (
	"leonardo-backend/lib/serviceutil"
	"leonardo-backend/services/timetable"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var exportClass string
var exportOut string
var exportRemote string

func init() {
	exportCmd.Flags().StringVar(&exportClass, "class", timetable.NoFilter, "Only export entries of this class.")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "timetable.ics", "The file to write the calendar to.")
	exportCmd.Flags().StringVar(&exportRemote, "remote", "", "Base url of a running leonardo-server to ask instead of the site.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--class <class>] [--out <path/to/file.ics>]",
	Short: "Writes the current timetable as an iCalendar file.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		snapshot, err := fetchSnapshot(cmd.Context(), cfg, exportRemote, exportClass)
		if err != nil {
			serviceutil.Fatal("failed to fetch snapshot", err)
		}

		name := "Timetable"
		if exportClass != timetable.NoFilter {
			name += " " + exportClass
		}
		calendar := timetable.ToCalendar(cmd.Context(), snapshot, name, time.Now())

		err = os.WriteFile(exportOut, []byte(calendar), 0644)
		if err != nil {
			serviceutil.Fatal("failed to write calendar", err)
		}
		slog.Info("exported calendar", "path", exportOut, "entries", len(snapshot.Data))
	},
}
