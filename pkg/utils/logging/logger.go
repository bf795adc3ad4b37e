package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/clog/hooks"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/m-mizutani/l10nsync/pkg/domain/types"
)

var (
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))

	// currentOutput is the log file opened by the last Configure, if any
	currentOutput io.Closer
)

func init() {
	_ = Configure("text", "info", "stderr")
}

// Default returns the default logger
func Default() *slog.Logger {
	return defaultLogger
}

var levelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func newFilter() func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(
		// Mask value with `masq:"secret"` tag
		masq.WithTag("secret"),
		masq.WithType[types.APIKey](masq.MaskWithSymbol('*', 32)),
		masq.WithType[types.WebhookToken](masq.MaskWithSymbol('*', 32)),
		// Crowdin v1 API takes the key as a query parameter
		masq.WithFieldName("key"),
	)
}

// openOutput resolves "-", "stdout" and "stderr". Any other value is a file
// that is appended to.
func openOutput(logOutput string) (io.Writer, error) {
	switch logOutput {
	case "stdout", "-":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}

	fd, err := os.OpenFile(filepath.Clean(logOutput), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "failed to open log file", goerr.V("path", logOutput), goerr.V("error", err))
	}
	return fd, nil
}

func newTextHandler(w io.Writer, level slog.Level, filter func([]string, slog.Attr) slog.Attr) slog.Handler {
	return clog.New(
		clog.WithWriter(w),
		clog.WithLevel(level),
		clog.WithSource(level <= slog.LevelDebug),
		clog.WithColorMap(&clog.ColorMap{
			Level: map[slog.Level]*color.Color{
				slog.LevelDebug: color.New(color.FgGreen, color.Bold),
				slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
				slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
				slog.LevelError: color.New(color.FgRed, color.Bold),
			},
			LevelDefault: color.New(color.FgBlue, color.Bold),
			Time:         color.New(color.FgWhite),
			Message:      color.New(color.FgHiWhite),
			AttrKey:      color.New(color.FgHiCyan),
			AttrValue:    color.New(color.FgHiWhite),
		}),
		clog.WithAttrHook(hooks.GoErr()),
		clog.WithReplaceAttr(filter),
	)
}

// Configure replaces the default logger. logFormat is "text" or "json" and
// logLevel one of debug, info, warn and error.
func Configure(logFormat, logLevel, logOutput string) error {
	level, ok := levelMap[logLevel]
	if !ok {
		return goerr.Wrap(types.ErrInvalidOption, "invalid log level", goerr.V("value", logLevel))
	}

	if logFormat != "text" && logFormat != "json" {
		return goerr.Wrap(types.ErrInvalidOption, "invalid log format, should be 'json' or 'text'", goerr.V("value", logFormat))
	}

	w, err := openOutput(logOutput)
	if err != nil {
		return err
	}

	filter := newFilter()
	var handler slog.Handler
	if logFormat == "text" {
		handler = newTextHandler(w, level, filter)
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		})
	}

	defaultLogger = slog.New(handler)

	prev := currentOutput
	currentOutput = nil
	if fd, ok := w.(*os.File); ok && fd != os.Stdout && fd != os.Stderr {
		currentOutput = fd
	}
	if prev != nil {
		if err := prev.Close(); err != nil {
			defaultLogger.Warn("failed to close previous log output", slog.Any("error", err))
		}
	}

	return nil
}
