package model

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/l10nsync/pkg/domain/types"
)

// DefaultCrowdinEndpoint is the base of the Crowdin v1 project API.
const DefaultCrowdinEndpoint = "https://api.crowdin.com/api"

// ExportRequest identifies the Crowdin project to export and download.
type ExportRequest struct {
	ProjectID types.ProjectID
	APIKey    types.APIKey `masq:"secret"`
}

func (x *ExportRequest) Validate() error {
	if x.ProjectID == "" {
		return goerr.Wrap(types.ErrConfigInvalid, "project ID is empty")
	}
	return nil
}

// ExportURL returns the URL that asks Crowdin to rebuild the export bundle.
// projectID and key are embedded as-is.
func (x *ExportRequest) ExportURL(endpoint string) string {
	return fmt.Sprintf("%s/project/%s/export?key=%s", trimEndpoint(endpoint), x.ProjectID, string(x.APIKey))
}

// DownloadURL returns the URL of the zip bundle containing all languages.
func (x *ExportRequest) DownloadURL(endpoint string) string {
	return fmt.Sprintf("%s/project/%s/download/all.zip?key=%s", trimEndpoint(endpoint), x.ProjectID, string(x.APIKey))
}

func trimEndpoint(endpoint string) string {
	if endpoint == "" {
		return DefaultCrowdinEndpoint
	}
	return strings.TrimRight(endpoint, "/")
}

// RedactURL replaces the value of the key query parameter so that the URL can
// be logged or attached to an error.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(invalid url)"
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "redacted")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
