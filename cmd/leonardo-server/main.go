package main

import (
	"flag"
	"leonardo-backend/lib/serviceutil"
	"net/http"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	configPath := flag.String("config", "config.json5", "Path to the config file.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := ReadConfig(*configPath)
	if err != nil {
		serviceutil.Fatal("read config", err)
	}

	mux := http.NewServeMux()

	service, err := InitTimetable(mux, cfg)
	if err != nil {
		serviceutil.Fatal("init timetable", err)
	}
	w, err := InitWatcher(cfg, service)
	if err != nil {
		serviceutil.Fatal("init watcher", err)
	}
	if w != nil {
		go RunWatcher(ctx, w)
	}

	err = serviceutil.StartHttpServer(ctx, cfg.Port, serviceutil.LogRequests(mux))
	if err != nil {
		serviceutil.Fatal("serve http", err)
	}
}
