package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . Crowdin

import (
	"context"
	"io"

	"github.com/m-mizutani/l10nsync/pkg/domain/model"
)

type Crowdin interface {
	// Export asks Crowdin to rebuild the export bundle of the project.
	Export(ctx context.Context, req *model.ExportRequest) error

	// Download opens the export bundle as a zip byte stream. The caller must
	// close the returned reader.
	Download(ctx context.Context, req *model.ExportRequest) (io.ReadCloser, error)
}
