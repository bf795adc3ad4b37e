package crowdin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/l10nsync/pkg/domain/interfaces"
	"github.com/m-mizutani/l10nsync/pkg/domain/model"
	"github.com/m-mizutani/l10nsync/pkg/domain/types"
	"github.com/m-mizutani/l10nsync/pkg/utils/logging"
	"github.com/m-mizutani/l10nsync/pkg/utils/safe"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Crowdin v1 project API with a static project key.
type Client struct {
	endpoint   string
	httpClient HTTPClient
}

var _ interfaces.Crowdin = (*Client)(nil)

type Option func(*Client)

// WithEndpoint replaces the API base URL, e.g. "https://api.crowdin.com/api".
func WithEndpoint(endpoint string) Option {
	return func(x *Client) {
		x.endpoint = endpoint
	}
}

func WithHTTPClient(client HTTPClient) Option {
	return func(x *Client) {
		x.httpClient = client
	}
}

func New(options ...Option) *Client {
	client := &Client{
		endpoint:   model.DefaultCrowdinEndpoint,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// Export only rejects a 401 response. Any other status is accepted because a
// previous export may still be valid for download.
func (x *Client) Export(ctx context.Context, req *model.ExportRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	rawURL := req.ExportURL(x.endpoint)
	logger := logging.From(ctx).With(slog.String("url", model.RedactURL(rawURL)))
	logger.Debug("exporting crowdin localizations")

	resp, err := x.get(ctx, rawURL)
	if err != nil {
		return goerr.Wrap(types.ErrConnectionFailed, "failed to send export request",
			goerr.V("op", "export"),
			goerr.V("url", model.RedactURL(rawURL)),
			goerr.V("error", err),
		)
	}
	defer safe.Close(ctx, resp.Body)

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		logger.Debug("failed to drain export response", "error", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return goerr.Wrap(types.ErrInvalidCredentials, "invalid Crowdin API key",
			goerr.V("op", "export"),
			goerr.V("project_id", req.ProjectID),
			goerr.V("status", resp.StatusCode),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("export request returned non-success status, continuing", "status", resp.StatusCode)
	}

	return nil
}

// Download opens the all-languages bundle. The caller reads the body as a zip
// stream and must close it.
func (x *Client) Download(ctx context.Context, req *model.ExportRequest) (io.ReadCloser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rawURL := req.DownloadURL(x.endpoint)
	logging.From(ctx).Info("downloading crowdin localizations", "url", model.RedactURL(rawURL))

	resp, err := x.get(ctx, rawURL)
	if err != nil {
		return nil, goerr.Wrap(types.ErrDownloadFailed, "failed to connect to download URL",
			goerr.V("op", "download"),
			goerr.V("url", model.RedactURL(rawURL)),
			goerr.V("error", err),
		)
	}

	if resp.StatusCode >= 400 {
		defer safe.Close(ctx, resp.Body)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, goerr.Wrap(types.ErrDownloadFailed, "download request returned error status",
			goerr.V("op", "download"),
			goerr.V("url", model.RedactURL(rawURL)),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	return resp.Body, nil
}

func (x *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, redactError(err)
	}
	httpReq.Header.Set("User-Agent", types.UserAgent())

	resp, err := x.httpClient.Do(httpReq)
	if err != nil {
		return nil, redactError(err)
	}
	return resp, nil
}

// redactError hides the API key that *url.Error carries in its URL.
func redactError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{
			Op:  urlErr.Op,
			URL: model.RedactURL(urlErr.URL),
			Err: urlErr.Err,
		}
	}
	return err
}
