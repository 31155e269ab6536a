package speech

import (
	"net/http"
	"time"
)

// Option настраивает HTTP-клиентов провайдеров.
type Option func(*httpOptions)

type httpOptions struct {
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
}

// WithBaseURL подменяет адрес API (для тестов и прокси).
func WithBaseURL(u string) Option {
	return func(o *httpOptions) { o.baseURL = u }
}

// WithHTTPClient задаёт свой http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *httpOptions) { o.client = c }
}

// WithPollInterval - как часто опрашивать статус асинхронной расшифровки.
func WithPollInterval(d time.Duration) Option {
	return func(o *httpOptions) { o.pollInterval = d }
}

func buildOptions(defaultBase string, timeout time.Duration, opts []Option) httpOptions {
	o := httpOptions{
		baseURL:      defaultBase,
		client:       &http.Client{Timeout: timeout},
		pollInterval: time.Second,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
