package infra

import (
	"net/http"

	"github.com/m-mizutani/l10nsync/pkg/domain/interfaces"
	"github.com/m-mizutani/l10nsync/pkg/infra/crowdin"
	"github.com/m-mizutani/l10nsync/pkg/infra/metrics"
)

type Clients struct {
	httpClient      HTTPClient
	crowdin         interfaces.Crowdin
	crowdinEndpoint string
	metrics         *metrics.Metrics
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		httpClient: http.DefaultClient,
	}

	for _, opt := range options {
		opt(client)
	}

	if client.crowdin == nil {
		crowdinOpts := []crowdin.Option{crowdin.WithHTTPClient(client.httpClient)}
		if client.crowdinEndpoint != "" {
			crowdinOpts = append(crowdinOpts, crowdin.WithEndpoint(client.crowdinEndpoint))
		}
		client.crowdin = crowdin.New(crowdinOpts...)
	}
	if client.metrics == nil {
		client.metrics = metrics.New()
	}

	return client
}

func (x *Clients) HTTPClient() HTTPClient {
	return x.httpClient
}
func (x *Clients) Crowdin() interfaces.Crowdin {
	return x.crowdin
}
func (x *Clients) Metrics() *metrics.Metrics {
	return x.metrics
}

func WithHTTPClient(client HTTPClient) Option {
	return func(x *Clients) {
		x.httpClient = client
	}
}

// WithCrowdin replaces the Crowdin client entirely. WithCrowdinEndpoint is
// ignored when this is set.
func WithCrowdin(client interfaces.Crowdin) Option {
	return func(x *Clients) {
		x.crowdin = client
	}
}

func WithCrowdinEndpoint(endpoint string) Option {
	return func(x *Clients) {
		x.crowdinEndpoint = endpoint
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(x *Clients) {
		x.metrics = m
	}
}
