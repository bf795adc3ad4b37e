package safe

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/l10nsync/pkg/utils/logging"
)

// Close closes the resource and logs a close error with the logger of ctx,
// so that it carries the run_id. io.EOF is not an error here.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil && err != io.EOF {
		logging.From(ctx).Warn("Fail to close resource",
			slog.String("type", fmt.Sprintf("%T", closer)),
			slog.Any("error", err),
		)
	}
}

// CloseInto closes the resource and stores the close error, wrapped with
// sentinel, in *errp when no earlier error has been stored. A close error that
// follows an earlier one is only logged. Call it with defer and a named error
// result.
func CloseInto(ctx context.Context, closer io.Closer, errp *error, sentinel error) {
	if closer == nil {
		return
	}
	err := closer.Close()
	if err == nil || err == io.EOF {
		return
	}

	if *errp == nil {
		*errp = goerr.Wrap(sentinel, "failed to close resource",
			goerr.V("type", fmt.Sprintf("%T", closer)),
			goerr.V("error", err),
		)
		return
	}

	logging.From(ctx).Warn("Fail to close resource after error",
		slog.String("type", fmt.Sprintf("%T", closer)),
		slog.Any("error", err),
		slog.Any("cause", *errp),
	)
}
