package httpx

import (
	"net/http"
	"time"
)

const DefaultTimeout = 15 * time.Second

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=http_client_mock.go --case=underscore --with-expecter

// Client abstracts the outbound HTTP client so provider calls can be mocked.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient returns a net/http client with a bounded overall timeout.
// Moderation providers answer in seconds; anything longer is treated as an
// infrastructure failure upstream.
func NewClient(timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
