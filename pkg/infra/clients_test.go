package infra_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/l10nsync/pkg/domain/mock"
	"github.com/m-mizutani/l10nsync/pkg/domain/model"
	"github.com/m-mizutani/l10nsync/pkg/infra"
	"github.com/m-mizutani/l10nsync/pkg/infra/metrics"
)

func TestNew(t *testing.T) {
	t.Run("create new clients without options", func(t *testing.T) {
		clients := infra.New()
		gt.V(t, clients.HTTPClient()).Equal(http.DefaultClient)
		gt.True(t, clients.Crowdin() != nil)
		gt.True(t, clients.Metrics() != nil)
	})

	t.Run("WithCrowdin option sets Crowdin client", func(t *testing.T) {
		mockCrowdin := &mock.CrowdinMock{}
		clients := infra.New(infra.WithCrowdin(mockCrowdin))
		gt.V(t, clients.Crowdin()).Equal(mockCrowdin)
	})

	t.Run("WithMetrics option sets metrics", func(t *testing.T) {
		m := metrics.New()
		clients := infra.New(infra.WithMetrics(m))
		gt.V(t, clients.Metrics()).Equal(m)
	})

	t.Run("default Crowdin client uses given HTTP client and endpoint", func(t *testing.T) {
		mockHTTP := &mockHTTPClient{}
		clients := infra.New(
			infra.WithHTTPClient(mockHTTP),
			infra.WithCrowdinEndpoint("https://crowdin.example.com/api"),
		)
		gt.V(t, clients.HTTPClient()).Equal(mockHTTP)

		req := &model.ExportRequest{ProjectID: "my-mod", APIKey: "k"}
		gt.NoError(t, clients.Crowdin().Export(context.Background(), req))
		gt.V(t, len(mockHTTP.requests)).Equal(1)
		gt.V(t, mockHTTP.requests[0].URL.Host).Equal("crowdin.example.com")
		gt.V(t, mockHTTP.requests[0].URL.Path).Equal("/api/project/my-mod/export")
	})
}

type mockHTTPClient struct {
	requests []*http.Request
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}
