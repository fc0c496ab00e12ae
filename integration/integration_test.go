//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	phaxio "github.com/faxkit/phaxio-go"
)

var (
	apiKey    string
	apiSecret string
	baseURL   string
	toNumber  string
)

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		os.Stderr.WriteString("Note: .env file not found at project root\n")
	}

	apiKey = os.Getenv("PHAXIO_API_KEY")
	apiSecret = os.Getenv("PHAXIO_API_SECRET")
	baseURL = os.Getenv("PHAXIO_BASE_URL")
	toNumber = os.Getenv("PHAXIO_TEST_NUMBER")

	if apiKey == "" || apiSecret == "" {
		os.Stderr.WriteString("Skipping integration tests: PHAXIO_API_KEY / PHAXIO_API_SECRET not set\n")
		os.Exit(0)
	}
	if toNumber == "" {
		os.Stderr.WriteString("Skipping integration tests: PHAXIO_TEST_NUMBER not set\n")
		os.Exit(0)
	}

	os.Exit(m.Run())
}

func clientOptions() []phaxio.Option {
	opts := []phaxio.Option{phaxio.WithTimeout(30 * time.Second)}
	if baseURL != "" {
		opts = append(opts, phaxio.WithBaseURL(baseURL))
	}
	return opts
}

func newClient(t *testing.T) *phaxio.Client {
	t.Helper()

	client, err := phaxio.New(apiKey, apiSecret, clientOptions()...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestIntegration_SendStringDataAndStatus(t *testing.T) {
	client := newClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := client.Send(ctx, toNumber, &phaxio.SendOptions{
		StringData:     "<h1>phaxio-go integration test</h1>",
		StringDataType: "html",
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if res.FaxID == 0 {
		t.Fatalf("Send() returned no fax id, raw: %s", res.Raw)
	}
	t.Logf("Queued fax %d", res.FaxID)

	status, err := client.FaxStatus(ctx, res.FaxID)
	if err != nil {
		t.Fatalf("FaxStatus() error = %v", err)
	}
	if status.Fax == nil || status.Fax.ID != res.FaxID {
		t.Errorf("FaxStatus() fax = %+v, want id %d", status.Fax, res.FaxID)
	}
}

func TestIntegration_BadCredentials(t *testing.T) {
	client, err := phaxio.New("wrong", "wrong", clientOptions()...)
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.FaxStatus(context.Background(), 1)
	var apiErr *phaxio.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("FaxStatus() error = %v, want *APIError", err)
	}
	if len(apiErr.Body) == 0 {
		t.Error("APIError.Body is empty")
	}
}
