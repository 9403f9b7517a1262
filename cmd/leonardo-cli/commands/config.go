package commands

import (
	"context"
	"fmt"
	"leonardo-backend/lib/configutil"
	configlibsql "leonardo-backend/lib/configutil/libsql"
	"leonardo-backend/lib/serviceutil"
	"leonardo-backend/services/timetable"
	"net/http"
	"time"

	"connectrpc.com/connect"
)

// Config is the part of the server config the cli needs.
type Config struct {
	AccessToken string `json:"access_token"`
	Timetable   struct {
		PageUrl        string `json:"page_url"`
		Username       string `json:"username"`
		Password       string `json:"password"`
		MaxPages       int    `json:"max_pages"`
		TimeoutSeconds int    `json:"timeout_seconds"`
	} `json:"timetable"`
	Watcher struct {
		Database configlibsql.Struct `json:"database"`
	} `json:"watcher"`
}

func readConfig() (Config, error) {
	err := configutil.LoadDotenv()
	if err != nil {
		return Config{}, err
	}
	cfg, err := configutil.ReadRecursively[Config](configPath)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", configPath, err)
	}
	configutil.OverrideFromEnv(&cfg.Timetable.Username, "LEONARDO_USERNAME")
	configutil.OverrideFromEnv(&cfg.Timetable.Password, "LEONARDO_PASSWORD")
	configutil.OverrideFromEnv(&cfg.AccessToken, "LEONARDO_ACCESS_TOKEN")
	if cfg.Watcher.Database.File == "" {
		cfg.Watcher.Database.File = "<dev_state>/watcher.db"
	}
	return cfg, nil
}

// fetchSnapshot builds the snapshot locally, or asks a running server when
// `remote` is set.
func fetchSnapshot(ctx context.Context, cfg Config, remote, filter string) (timetable.Snapshot, error) {
	if remote != "" {
		client := timetable.NewConnectClient(
			http.DefaultClient, remote,
			connect.WithInterceptors(serviceutil.ProvideAccessTokenInterceptor(cfg.AccessToken)),
		)
		res, err := client.GetSnapshot(ctx, connect.NewRequest(&timetable.GetSnapshotRequest{
			Class: filter,
		}))
		if err != nil {
			return timetable.Snapshot{}, err
		}
		return res.Msg.Snapshot, nil
	}

	service, err := timetable.NewService(timetable.ServiceOptions{
		PageUrl:  cfg.Timetable.PageUrl,
		Timeout:  time.Duration(cfg.Timetable.TimeoutSeconds) * time.Second,
		MaxPages: cfg.Timetable.MaxPages,
	})
	if err != nil {
		return timetable.Snapshot{}, err
	}
	return service.BuildSnapshot(ctx, cfg.Timetable.Username, cfg.Timetable.Password, filter)
}
