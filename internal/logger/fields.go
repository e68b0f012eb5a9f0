package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldFile is the structured log field key for the input file.
	FieldFile = "file"
	// FieldCatalog is the structured log field key for the rule catalog name.
	FieldCatalog = "catalog"
	// FieldScore is the structured log field key for a computed score.
	FieldScore = "score"
	// FieldVerdict is the structured log field key for a computed verdict.
	FieldVerdict = "verdict"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger, falling back to a no-op logger when
// logger is nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// InputFields describes the file and catalog of a scoring run. Empty values
// are dropped.
func InputFields(file, catalog string) []zap.Field {
	return StringFields(
		StringField{Key: FieldFile, Value: file},
		StringField{Key: FieldCatalog, Value: catalog},
	)
}

// ScoreFields describes the outcome of one evaluation.
func ScoreFields(score int, verdict string) []zap.Field {
	fields := []zap.Field{zap.Int(FieldScore, score)}
	return append(fields, StringFields(StringField{Key: FieldVerdict, Value: verdict})...)
}
