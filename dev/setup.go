package main

import (
	"encoding/json"
	"fmt"
	devenv "leonardo-backend/dev/env"
	configlibsql "leonardo-backend/lib/configutil/libsql"
	watcherdb "leonardo-backend/services/watcher/db"
	"log/slog"
	"os"
	"path/filepath"
)

func CreateWatcherDB() error {
	path, err := devenv.ResolvePath(filepath.Join("<dev_state>", "watcher.db"))
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("database already created at", path)
		return nil
	}

	fmt.Println("creating database at", path)
	db, err := configlibsql.Struct{File: path}.OpenDB(watcherdb.Schema)
	if err != nil {
		return err
	}
	return db.Close()
}

func writeIfMissing(path string, contents []byte) error {
	_, err := os.Stat(path)
	if err == nil {
		fmt.Println("keeping existing", path)
		return nil
	}
	fmt.Println("writing", path)
	return os.WriteFile(path, contents, 0600)
}

func CreateConfigFiles() error {
	vplanPath, err := devenv.GetStateFilePath("vplan_config.json5")
	if err != nil {
		return err
	}
	// plain json is valid json5
	template, err := json.MarshalIndent(devenv.VplanTestConfig{
		PageUrl: "https://example.org/vplan/subst_{page3}.htm",
		Class:   "NOFILTER",
	}, "", "  ")
	if err != nil {
		return err
	}
	err = writeIfMissing(vplanPath, template)
	if err != nil {
		return err
	}

	example, err := os.ReadFile("cmd/leonardo-server/config.example.json5")
	if err != nil {
		return err
	}
	return writeIfMissing("config.json5", example)
}

func PrintConfigLocations() {
	slog.Info("fill in dev/.state/vplan_config.json5 to run the tests against the real timetable site, and config.json5 to run leonardo-server or leonardo-cli.")
}
