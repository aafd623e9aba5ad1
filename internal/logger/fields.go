package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/grant-matcher/internal/grants"
)

const (
	// FieldRunID identifies one CLI invocation across all of its log entries.
	FieldRunID = "run_id"
	// FieldOrganization is the structured log field key for an organization id.
	FieldOrganization = "org_id"
	// FieldOpportunity is the structured log field key for an opportunity id.
	FieldOpportunity = "grant_id"
	FieldSource      = "source"
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

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// AlignmentFields describes one scored pair. A nil result yields no fields.
func AlignmentFields(r *grants.AlignmentResult) []zap.Field {
	if r == nil {
		return nil
	}

	fields := StringFields(
		StringField{Key: FieldOrganization, Value: r.Organization.ID},
		StringField{Key: FieldOpportunity, Value: r.Opportunity.ID},
	)
	return append(fields,
		zap.Float64("score", r.Score),
		zap.Strings("theme_matches", r.ThemeMatches),
		zap.Bool("region_match", r.RegionMatch),
	)
}

// WithRun attaches the run id to the logger.
func WithRun(logger *zap.Logger, runID string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldRunID, Value: runID})...)
}
