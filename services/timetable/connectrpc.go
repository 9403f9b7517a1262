package timetable

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	ServiceName = "leonardo.timetable.v1.TimetableService"

	GetSnapshotProcedure = "/" + ServiceName + "/GetSnapshot"
)

type GetSnapshotRequest struct {
	// Class is a class name or NoFilter, empty means NoFilter.
	Class string `json:"class"`
	// Username and Password replace the server's configured credentials
	// when both are set.
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

type GetSnapshotResponse struct {
	Snapshot
}

// jsonCodec lets connect carry the plain snapshot structs without generated
// protobuf messages, it replaces connect's builtin "json" codec.
type jsonCodec struct{}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) Marshal(value any) ([]byte, error) {
	return json.Marshal(value)
}

func (jsonCodec) Unmarshal(data []byte, value any) error {
	return json.Unmarshal(data, value)
}

type connectHandler struct {
	service Service
	creds   Credentials
}

func (h connectHandler) GetSnapshot(ctx context.Context, req *connect.Request[GetSnapshotRequest]) (*connect.Response[GetSnapshotResponse], error) {
	creds := h.creds
	if req.Msg.Username != "" || req.Msg.Password != "" {
		if req.Msg.Username == "" || req.Msg.Password == "" {
			return nil, connect.NewError(
				connect.CodeInvalidArgument,
				errors.New("username and password must be given together"),
			)
		}
		creds = Credentials{Username: req.Msg.Username, Password: req.Msg.Password}
	}

	filter := strings.TrimSpace(req.Msg.Class)
	if filter == "" {
		filter = NoFilter
	}

	snapshot, err := h.service.BuildSnapshot(ctx, creds.Username, creds.Password, filter)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&GetSnapshotResponse{Snapshot: snapshot}), nil
}

// NewConnectHandler returns the path and handler of the connect service,
// `opts` usually carries the telemetry and access token interceptors.
func NewConnectHandler(service Service, creds Credentials, opts ...connect.HandlerOption) (string, http.Handler) {
	h := connectHandler{service: service, creds: creds}
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	return GetSnapshotProcedure, connect.NewUnaryHandler(
		GetSnapshotProcedure,
		h.GetSnapshot,
		opts...,
	)
}

// Client calls a remote TimetableService.
type Client struct {
	getSnapshot *connect.Client[GetSnapshotRequest, GetSnapshotResponse]
}

func NewConnectClient(httpClient connect.HTTPClient, baseUrl string, opts ...connect.ClientOption) Client {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return Client{
		getSnapshot: connect.NewClient[GetSnapshotRequest, GetSnapshotResponse](
			httpClient,
			strings.TrimRight(baseUrl, "/")+GetSnapshotProcedure,
			opts...,
		),
	}
}

func (c Client) GetSnapshot(ctx context.Context, req *connect.Request[GetSnapshotRequest]) (*connect.Response[GetSnapshotResponse], error) {
	return c.getSnapshot.CallUnary(ctx, req)
}
