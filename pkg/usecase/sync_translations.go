package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/l10nsync/pkg/domain/interfaces"
	"github.com/m-mizutani/l10nsync/pkg/domain/model"
	"github.com/m-mizutani/l10nsync/pkg/domain/types"
	"github.com/m-mizutani/l10nsync/pkg/infra/sink"
	"github.com/m-mizutani/l10nsync/pkg/infra/zipstream"
	"github.com/m-mizutani/l10nsync/pkg/utils/logging"
	"github.com/m-mizutani/l10nsync/pkg/utils/safe"
)

// SyncTranslations triggers a Crowdin export, downloads the all-languages
// bundle and writes every non-empty file of it, unescaped, into the output.
// The run stops at the first error. Output already written is left in place.
func (x *UseCase) SyncTranslations(ctx context.Context, input *model.SyncInput) (result *model.SyncResult, err error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	_, ctx = logging.WithRun(ctx)
	logger := logging.From(ctx)

	defer func() {
		x.clients.Metrics().RunFinished(runResult(err))
		if err != nil {
			result = nil
		}
	}()

	logger.Info("start syncing translations", "input", input)

	if err := x.clients.Crowdin().Export(ctx, &input.ExportRequest); err != nil {
		return nil, err
	}

	body, err := x.clients.Crowdin().Download(ctx, &input.ExportRequest)
	if err != nil {
		return nil, err
	}
	defer safe.Close(ctx, body)

	zr := zipstream.NewReader(body)

	dst, err := sink.New(input.OutputPath, input.Extract)
	if err != nil {
		return nil, err
	}
	// Runs before the body is closed
	defer safe.CloseInto(ctx, dst, &err, types.ErrSinkWriteFailed)

	result, err = x.transferEntries(ctx, zr, dst, input.EntryLimit())
	if err != nil {
		return nil, err
	}

	logger.Info("translations synced",
		"entries", result.Entries,
		"skipped", result.Skipped,
		"bytes", result.Bytes,
	)
	return result, nil
}

func (x *UseCase) transferEntries(ctx context.Context, zr *zipstream.Reader, dst interfaces.EntrySink, limit int64) (*model.SyncResult, error) {
	result := &model.SyncResult{}
	logger := logging.From(ctx)

	for {
		entry, err := zr.Next()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return nil, goerr.Wrap(types.ErrDownloadFailed, "failed to read next archive entry", goerr.V("error", err))
		}

		if entry.IsDir() || entry.Size == 0 {
			logger.Debug("skip archive entry", "name", entry.Name, "size", entry.Size)
			result.Skipped++
			x.clients.Metrics().EntrySkipped()
			continue
		}

		data, err := readEntry(zr, entry, limit)
		if err != nil {
			return nil, err
		}

		text, err := DecodeUTF8(data)
		if err != nil {
			return nil, goerr.Wrap(types.ErrTransformFailed, "failed to decode archive entry",
				goerr.V("name", entry.Name),
				goerr.V("error", err),
			)
		}

		transformed := &model.TransformedEntry{
			Name:     entry.Name,
			Data:     []byte(UnescapeLines(text)),
			Modified: entry.Modified,
		}
		if err := dst.Put(ctx, transformed); err != nil {
			return nil, err
		}

		result.Entries++
		result.Bytes += int64(len(transformed.Data))
		x.clients.Metrics().EntryWritten(len(transformed.Data))
	}
}

func readEntry(r io.Reader, entry *zipstream.Entry, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, goerr.Wrap(types.ErrDownloadFailed, "failed to read archive entry",
			goerr.V("name", entry.Name),
			goerr.V("error", err),
		)
	}
	if int64(len(data)) > limit {
		return nil, goerr.Wrap(types.ErrTransformFailed, "archive entry is too large",
			goerr.V("name", entry.Name),
			goerr.V("limit", limit),
		)
	}
	return data, nil
}

var runResults = []struct {
	err   error
	label string
}{
	{types.ErrConfigInvalid, "config_invalid"},
	{types.ErrInvalidCredentials, "invalid_credentials"},
	{types.ErrConnectionFailed, "connection_failed"},
	{types.ErrDownloadFailed, "download_failed"},
	{types.ErrTransformFailed, "transform_failed"},
	{types.ErrSinkWriteFailed, "sink_write_failed"},
}

func runResult(err error) string {
	if err == nil {
		return "success"
	}
	for _, r := range runResults {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "error"
}
