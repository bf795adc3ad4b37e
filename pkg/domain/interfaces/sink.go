package interfaces

import (
	"context"

	"github.com/m-mizutani/l10nsync/pkg/domain/model"
)

// EntrySink receives transformed entries in archive order. Close is called
// exactly once after the last Put, whether the run succeeded or not.
type EntrySink interface {
	Put(ctx context.Context, entry *model.TransformedEntry) error
	Close() error
}
