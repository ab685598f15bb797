package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	cgerrors "github.com/causalflow/causalgo/pkg/errors"
)

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("unmarshal log line %q: %v", line, err)
		}
		records = append(records, rec)
	}
	return records
}

func TestErrFmtHandlerExtractsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug")

	err := cgerrors.NewNotFittedError("TableProcessor", "Transform")
	logger.Error("transform failed", ErrAttr(err))

	records := decodeRecords(t, &buf)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]

	stacktrace, ok := rec[StacktraceAttrKey].(string)
	if !ok || stacktrace == "" {
		t.Error("expected a non-empty stacktrace attribute")
	}
	if _, ok := rec[ErrAttrKey]; !ok {
		t.Error("error attribute missing from record")
	}
	if code := rec[ErrorCodeKey]; code != ErrorNotFitted {
		t.Errorf("error code = %v, want %s", code, ErrorNotFitted)
	}
	if typ := rec[ErrorTypeKey]; typ != "NotFittedError" {
		t.Errorf("error type = %v, want NotFittedError", typ)
	}
}

func TestErrFmtHandlerClassifiesErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "dimension mismatch",
			err:      cgerrors.NewDimensionError("Transform", 3, 2, 1),
			wantCode: ErrorDimensionMismatch,
		},
		{
			name:     "undefined statistic",
			err:      cgerrors.NewUndefinedStatisticError("FitTransform", "x", "mean"),
			wantCode: ErrorUndefinedStatistic,
		},
		{
			name:     "empty data",
			err:      cgerrors.NewModelError("FitTransform", "empty data", cgerrors.ErrEmptyData),
			wantCode: ErrorEmptyData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "debug")
			logger.Warn("operation failed", ErrAttr(tt.err))

			records := decodeRecords(t, &buf)
			if len(records) != 1 {
				t.Fatalf("got %d records, want 1", len(records))
			}
			if code := records[0][ErrorCodeKey]; code != tt.wantCode {
				t.Errorf("error code = %v, want %s", code, tt.wantCode)
			}
		})
	}
}

func TestErrFmtHandlerLeavesUnknownErrorsUncoded(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug")
	logger.Warn("operation failed", ErrAttr(cgerrors.New("plain failure")))

	records := decodeRecords(t, &buf)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if _, ok := records[0][ErrorCodeKey]; ok {
		t.Error("unclassified errors must not carry an error code")
	}
}

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		if got := ToLogLevel(tt.level); got != tt.want {
			t.Errorf("ToLogLevel(%s) = %v, want %v", tt.level, got, tt.want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("invalid level should panic")
		}
	}()
	ToLogLevel("verbose")
}
