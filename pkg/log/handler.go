package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	cgerrors "github.com/causalflow/causalgo/pkg/errors"
)

// ErrFmtHandler is a slog handler that enriches records carrying an error
// attribute: it extracts the cockroachdb/errors stacktrace and classifies
// the error into a structured code (ErrorCodeKey/ErrorTypeKey) so log
// consumers can filter on failure kinds instead of message text.
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps a slog handler with error enrichment.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{
		handler: handler,
	}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var found error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ErrAttrKey {
			if err, ok := attr.Value.Any().(error); ok {
				found = err
			}
			return false
		}
		return true
	})
	if found != nil {
		if stacktrace := extractStacktrace(found); stacktrace != "" {
			r.AddAttrs(slog.String(StacktraceAttrKey, stacktrace))
		}
		if code, typ := classifyError(found); code != "" {
			r.AddAttrs(
				slog.String(ErrorCodeKey, code),
				slog.String(ErrorTypeKey, typ),
			)
		}
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

// classifyError maps the library's error taxonomy onto structured codes.
// Unknown errors yield an empty code and are logged without one.
func classifyError(err error) (code, typ string) {
	var nfe *cgerrors.NotFittedError
	if cgerrors.As(err, &nfe) {
		return ErrorNotFitted, "NotFittedError"
	}
	var de *cgerrors.DimensionError
	if cgerrors.As(err, &de) {
		return ErrorDimensionMismatch, "DimensionError"
	}
	var use *cgerrors.UndefinedStatisticError
	if cgerrors.As(err, &use) {
		return ErrorUndefinedStatistic, "UndefinedStatisticError"
	}
	var sdw *cgerrors.SchemaDriftWarning
	if cgerrors.As(err, &sdw) {
		return ErrorSchemaDrift, "SchemaDriftWarning"
	}
	if cgerrors.Is(err, cgerrors.ErrEmptyData) {
		return ErrorEmptyData, "ModelError"
	}
	if cgerrors.Is(err, cgerrors.ErrSingularMatrix) {
		return ErrorSingularMatrix, "ModelError"
	}
	return "", ""
}
