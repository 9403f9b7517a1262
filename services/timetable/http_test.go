package timetable

import (
	"context"
	"encoding/json"
	"io"
	"leonardo-backend/lib/scrapers/vplan/vplantest"
	"leonardo-backend/lib/serviceutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	site    *vplantest.Site
	server  *httptest.Server
	service Service
	creds   Credentials
	close   func()
}

func setupServer(t *testing.T, accessToken string, pages ...vplantest.Page) testServer {
	site := vplantest.NewSite(pages...)

	service, err := NewService(ServiceOptions{PageUrl: site.PageUrl()})
	require.NoError(t, err)

	creds := Credentials{Username: vplantest.Username, Password: vplantest.Password}

	mux := http.NewServeMux()
	RegisterRoutes(mux, service, creds)
	mux.Handle(NewConnectHandler(
		service, creds,
		connect.WithInterceptors(serviceutil.VerifyAccessTokenInterceptor(accessToken)),
	))
	server := httptest.NewServer(serviceutil.LogRequests(mux))

	return testServer{
		site:    site,
		server:  server,
		service: service,
		creds:   creds,
		close: func() {
			server.Close()
			site.Close()
		},
	}
}

func get(t *testing.T, url string) (int, string, string) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, res.Header.Get("content-type"), string(body)
}

func TestNewServiceValidatesUrl(t *testing.T) {
	_, err := NewService(ServiceOptions{PageUrl: "https://example.com/plan.htm"})
	require.Error(t, err)
}

func TestHttpRoutes(t *testing.T) {
	s := setupServer(t, "", threePages()...)
	defer s.close()

	status, contentType, body := get(t, s.server.URL+"/")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, contentType, "text/html")
	require.Equal(t, hintPage, body)

	expected, err := s.service.BuildSnapshot(context.Background(), s.creds.Username, s.creds.Password, NoFilter)
	require.NoError(t, err)

	status, contentType, body = get(t, s.server.URL+"/total")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "application/json", contentType)
	var total Snapshot
	require.NoError(t, json.Unmarshal([]byte(body), &total))
	if diff := cmp.Diff(expected, total); diff != "" {
		t.Fatalf("/total mismatch (-want +got):\n%s", diff)
	}

	status, _, body = get(t, s.server.URL+"/get/10B")
	require.Equal(t, http.StatusOK, status)
	var class Snapshot
	require.NoError(t, json.Unmarshal([]byte(body), &class))
	require.Len(t, class.Data, 2)
	for _, entry := range class.Data {
		require.Equal(t, "10B", entry.Class)
	}

	status, _, body = get(t, s.server.URL+"/get/7Z")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"infos": [
		{"day": "Dienstag 06.09.2024", "info": "Projekttag"},
		{"day": "Mittwoch 07.09.2024", "info": "Wandertag"}
	], "data": []}`, body)

	status, contentType, body = get(t, s.server.URL+"/ical/10A")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, calendarContentType, contentType)
	require.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR"))
	require.Contains(t, body, "X-WR-CALNAME:Timetable 10A")

	status, _, body = get(t, s.server.URL+"/suggest/10a?limit=1")
	require.Equal(t, http.StatusOK, status)
	var suggestions []Suggestion
	require.NoError(t, json.Unmarshal([]byte(body), &suggestions))
	require.Len(t, suggestions, 1)
	require.Equal(t, "10A", suggestions[0].Class)

	status, _, _ = get(t, s.server.URL+"/suggest/10a?limit=zero")
	require.Equal(t, http.StatusBadRequest, status)
}

func TestHttpError(t *testing.T) {
	pages := threePages()
	pages[1].OmitNavigation = true
	s := setupServer(t, "", pages...)
	defer s.close()

	status, contentType, body := get(t, s.server.URL+"/total")
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "application/json", contentType)
	require.JSONEq(t, `{"error": "page 2: navigation bar not found"}`, body)
}

func TestConnectGetSnapshot(t *testing.T) {
	s := setupServer(t, "secret", threePages()...)
	defer s.close()

	ctx := context.Background()
	expected, err := s.service.BuildSnapshot(ctx, s.creds.Username, s.creds.Password, "10A")
	require.NoError(t, err)

	client := NewConnectClient(
		http.DefaultClient, s.server.URL,
		connect.WithInterceptors(serviceutil.ProvideAccessTokenInterceptor("secret")),
	)
	res, err := client.GetSnapshot(ctx, connect.NewRequest(&GetSnapshotRequest{Class: "10A"}))
	require.NoError(t, err)
	if diff := cmp.Diff(expected, res.Msg.Snapshot); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	_, err = client.GetSnapshot(ctx, connect.NewRequest(&GetSnapshotRequest{
		Class:    "10A",
		Username: vplantest.Username,
	}))
	require.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = client.GetSnapshot(ctx, connect.NewRequest(&GetSnapshotRequest{
		Username: vplantest.Username,
		Password: "wrong",
	}))
	require.Equal(t, connect.CodeInternal, connect.CodeOf(err))

	unauthorized := NewConnectClient(http.DefaultClient, s.server.URL)
	_, err = unauthorized.GetSnapshot(ctx, connect.NewRequest(&GetSnapshotRequest{}))
	require.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}
