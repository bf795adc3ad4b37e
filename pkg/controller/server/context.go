package server

import (
	"context"

	"github.com/m-mizutani/l10nsync/pkg/domain/types"
	"github.com/m-mizutani/l10nsync/pkg/utils/logging"
)

// DetachContext starts a sync run that outlives the request. The returned
// context is not cancelled with the request; it keeps the request logger and
// clock, and carries a run ID that the usecase reuses, so the webhook
// response, the request log and the run log share the same run_id.
func DetachContext(ctx context.Context) (types.RunID, context.Context) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))
	bgCtx = logging.InheritContextValues(bgCtx, ctx)

	return logging.WithRun(bgCtx)
}
