package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/l10nsync/pkg/domain/model"
	"github.com/m-mizutani/l10nsync/pkg/domain/types"
)

func TestExportRequestValidate(t *testing.T) {
	t.Run("valid request passes validation", func(t *testing.T) {
		req := &model.ExportRequest{ProjectID: "my-mod", APIKey: "secret"}
		gt.NoError(t, req.Validate())
	})

	t.Run("empty API key is allowed", func(t *testing.T) {
		req := &model.ExportRequest{ProjectID: "my-mod"}
		gt.NoError(t, req.Validate())
	})

	t.Run("missing project ID fails validation", func(t *testing.T) {
		req := &model.ExportRequest{APIKey: "secret"}
		err := req.Validate()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrConfigInvalid))
	})
}

func TestExportRequestURL(t *testing.T) {
	req := &model.ExportRequest{ProjectID: "my-mod", APIKey: "abc123"}

	t.Run("default endpoint", func(t *testing.T) {
		gt.V(t, req.ExportURL("")).Equal("https://api.crowdin.com/api/project/my-mod/export?key=abc123")
		gt.V(t, req.DownloadURL("")).Equal("https://api.crowdin.com/api/project/my-mod/download/all.zip?key=abc123")
	})

	t.Run("custom endpoint with trailing slash", func(t *testing.T) {
		gt.V(t, req.ExportURL("http://127.0.0.1:8080/api/")).Equal("http://127.0.0.1:8080/api/project/my-mod/export?key=abc123")
		gt.V(t, req.DownloadURL("http://127.0.0.1:8080/api")).Equal("http://127.0.0.1:8080/api/project/my-mod/download/all.zip?key=abc123")
	})
}

func TestRedactURL(t *testing.T) {
	t.Run("key is replaced", func(t *testing.T) {
		got := model.RedactURL("https://api.crowdin.com/api/project/p/export?key=abc123")
		gt.V(t, got).Equal("https://api.crowdin.com/api/project/p/export?key=redacted")
	})

	t.Run("url without key is unchanged", func(t *testing.T) {
		got := model.RedactURL("https://api.crowdin.com/api/project/p/export")
		gt.V(t, got).Equal("https://api.crowdin.com/api/project/p/export")
	})
}
