package server_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/l10nsync/pkg/controller/server"
	"github.com/m-mizutani/l10nsync/pkg/utils/logging"
)

func TestDetachContext(t *testing.T) {
	t.Run("starts a run tagged on the request logger", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "log.json")
		gt.NoError(t, logging.Configure("json", "info", logPath))
		t.Cleanup(func() {
			_ = logging.Configure("text", "info", "stderr")
		})

		reqCtx := logging.With(context.Background(), logging.Default().With("request_id", "req-1"))
		runID, bgCtx := server.DetachContext(reqCtx)

		got, ok := logging.RunIDFrom(bgCtx)
		gt.True(t, ok)
		gt.V(t, got).Equal(runID)

		logging.From(bgCtx).Info("sync started")
		raw := string(gt.R1(os.ReadFile(logPath)).NoError(t))
		gt.True(t, strings.Contains(raw, `"request_id":"req-1"`))
		gt.True(t, strings.Contains(raw, `"run_id":"`+runID.String()+`"`))
	})

	t.Run("keeps run ID of the original context", func(t *testing.T) {
		runID, reqCtx := logging.WithRun(context.Background())

		detachedID, bgCtx := server.DetachContext(reqCtx)
		gt.V(t, detachedID).Equal(runID)

		inherited, _ := logging.RunIDFrom(bgCtx)
		gt.V(t, inherited).Equal(runID)
	})

	t.Run("each detach without a run ID starts a new run", func(t *testing.T) {
		reqCtx := logging.With(context.Background(), slog.Default())
		a, _ := server.DetachContext(reqCtx)
		b, _ := server.DetachContext(reqCtx)
		gt.V(t, a == b).Equal(false)
	})

	t.Run("inherits time function", func(t *testing.T) {
		fixedTime := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
		reqCtx := logging.CtxWithTime(context.Background(), func() time.Time {
			return fixedTime
		})

		_, bgCtx := server.DetachContext(reqCtx)
		gt.V(t, logging.CtxTime(bgCtx)).Equal(fixedTime)
	})

	t.Run("is not cancelled with the request", func(t *testing.T) {
		reqCtx, cancel := context.WithCancel(context.Background())
		_, bgCtx := server.DetachContext(reqCtx)

		cancel()
		gt.V(t, reqCtx.Err()).Equal(context.Canceled)
		gt.V(t, bgCtx.Err()).Equal(nil)
	})
}
