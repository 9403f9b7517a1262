package main

import (
	"leonardo-backend/lib/serviceutil"
	"leonardo-backend/services/timetable"
	"net/http"

	"connectrpc.com/connect"
)

func InitTimetable(mux *http.ServeMux, cfg Config) (timetable.Service, error) {
	service, err := timetable.NewService(timetable.ServiceOptions{
		PageUrl:  cfg.Timetable.PageUrl,
		Timeout:  cfg.Timetable.Timeout(),
		MaxPages: cfg.Timetable.MaxPages,
	})
	if err != nil {
		return timetable.Service{}, err
	}

	creds := timetable.Credentials{
		Username: cfg.Timetable.Username,
		Password: cfg.Timetable.Password,
	}
	timetable.RegisterRoutes(mux, service, creds)

	otelInterceptor, err := serviceutil.NewConnectOtelInterceptor()
	if err != nil {
		return timetable.Service{}, err
	}
	mux.Handle(timetable.NewConnectHandler(
		service, creds,
		connect.WithInterceptors(
			otelInterceptor,
			serviceutil.VerifyAccessTokenInterceptor(cfg.AccessToken),
		),
	))
	return service, nil
}
