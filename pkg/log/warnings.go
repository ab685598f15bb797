package log

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/causalflow/causalgo/pkg/errors"
)

// EnableZerologWarnings routes library warnings (SchemaDriftWarning,
// ConvergenceWarning, ...) through a zerolog logger instead of the default
// stderr handler. Warning types implementing zerolog.LogObjectMarshaler are
// emitted as structured objects.
func EnableZerologWarnings() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	EnableZerologWarningsWith(logger)
}

// EnableZerologWarningsWith routes library warnings through the given logger.
func EnableZerologWarningsWith(logger zerolog.Logger) {
	errors.SetZerologWarnFunc(func(warning error) {
		event := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event.EmbedObject(obj).Msg(warning.Error())
			return
		}
		event.Err(warning).Msg(warning.Error())
	})
}
