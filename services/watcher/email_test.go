package watcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestEmailNotifier(t *testing.T) {
	if testing.Short() {
		t.Skip("needs a container runtime")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	// suppress logging
	testcontainers.Logger = log.New(io.Discard, "", 0)

	ctx := context.Background()
	smtp, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "haravich/fake-smtp-server",
			ExposedPorts: []string{"1025/tcp", "1080/tcp"},
			WaitingFor:   wait.ForLog("smtp://0.0.0.0:1025"),
		},
	})
	require.NoError(t, err)
	defer func() {
		err := smtp.Terminate(context.Background())
		if err != nil {
			t.Fatal(err)
		}
	}()

	host, err := smtp.Host(ctx)
	require.NoError(t, err)
	smtpPort, err := smtp.MappedPort(ctx, "1025/tcp")
	require.NoError(t, err)
	webPort, err := smtp.MappedPort(ctx, "1080/tcp")
	require.NoError(t, err)

	port, err := strconv.Atoi(smtpPort.Port())
	require.NoError(t, err)

	notifier := NewEmailNotifier(EmailConfig{
		Server:       host,
		Port:         port,
		EmailAddress: "leonardo@example.com",
		Password:     "default",
		To:           []string{"class-10a@example.com"},
	})
	err = notifier.Notify(ctx, Message{
		Filter: "10A",
		Title:  "Timetable 10A",
		Text:   "Montag 05.09.2024\nLesson: 1\nSubject: Mathe",
	})
	require.NoError(t, err)

	res, err := resty.New().R().
		SetContext(ctx).
		Get(fmt.Sprintf("http://%s:%s/messages/1.plain", host, webPort.Port()))
	require.NoError(t, err)
	require.Contains(t, res.String(), "Subject: Mathe")
}
