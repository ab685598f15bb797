package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// SetupLogger installs the library-wide JSON logger on slog's default.
// Records carrying an error attribute are enriched with a stacktrace and a
// structured error code by the wrapping handler.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stderr, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// NewLogger builds a stacktrace-aware JSON logger writing to w. Callers that
// do not want to touch the process-wide default can thread this through
// explicitly.
func NewLogger(w io.Writer, loglevel string) *slog.Logger {
	ops := slog.HandlerOptions{
		Level: ToLogLevel(loglevel),
	}
	return slog.New(WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops)))
}

func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
