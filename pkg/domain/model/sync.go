package model

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/l10nsync/pkg/domain/types"
)

// DefaultMaxEntrySize bounds the bytes buffered for a single entry.
const DefaultMaxEntrySize int64 = 64 * 1024 * 1024

type SyncInput struct {
	ExportRequest

	// OutputPath is a directory in extract mode, and a zip file path otherwise.
	OutputPath string
	Extract    bool

	// MaxEntrySize is DefaultMaxEntrySize when zero.
	MaxEntrySize int64
}

func (x *SyncInput) Validate() error {
	if err := x.ExportRequest.Validate(); err != nil {
		return err
	}
	if x.OutputPath == "" {
		return goerr.Wrap(types.ErrConfigInvalid, "output path is empty")
	}
	if x.MaxEntrySize < 0 {
		return goerr.Wrap(types.ErrConfigInvalid, "max entry size must not be negative", goerr.V("max_entry_size", x.MaxEntrySize))
	}
	return nil
}

func (x *SyncInput) EntryLimit() int64 {
	if x.MaxEntrySize == 0 {
		return DefaultMaxEntrySize
	}
	return x.MaxEntrySize
}

func (x SyncInput) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("project_id", x.ProjectID),
		slog.Any("api_key", x.APIKey),
		slog.String("output", x.OutputPath),
		slog.Bool("extract", x.Extract),
	)
}

// SyncResult summarizes one pipeline run.
type SyncResult struct {
	Entries int
	Skipped int
	Bytes   int64
}
