package logging

import "log/slog"

// Structured log keys shared across packages.
const (
	FieldService      = "service"
	FieldVersion      = "version"
	FieldProvider     = "provider"
	FieldRequestID    = "request_id"
	FieldPath         = "path"
	FieldMethod       = "method"
	FieldStatusCode   = "status_code"
	FieldDate         = "date"
	FieldCount        = "count"
	FieldDurationMS   = "duration_ms"
	FieldAttempts     = "attempts"
	FieldValidCells   = "valid_cells"
	FieldCandidates   = "candidates"
	FieldIndexVersion = "index_version"
	FieldGameID       = "game_id"
	FieldRemoteIP     = "remote_ip"
)

// WithCommon appends service/version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
