// Package envelope provides a standardized response wrapper for all command output.
// Every command response is wrapped in a consistent envelope that includes the
// schema version, the payload, non-fatal warnings, and an optional error string.
package envelope

// Warning represents a non-fatal issue.
type Warning struct {
	Code    string `json:"code,omitempty"` // machine-readable code
	Message string `json:"message"`        // human-readable message
}

// Meta holds response metadata.
type Meta struct {
	Command     string `json:"command,omitempty"`
	ProjectRoot string `json:"projectRoot,omitempty"`
	DurationMs  int64  `json:"durationMs,omitempty"`
}

// Response is the standard envelope for all command responses.
type Response struct {
	SchemaVersion string      `json:"schemaVersion"`
	Data          interface{} `json:"data"`
	Meta          *Meta       `json:"meta,omitempty"`
	Warnings      []Warning   `json:"warnings,omitempty"`
	Error         *string     `json:"error,omitempty"`
}

// CurrentSchemaVersion is the current envelope schema version.
const CurrentSchemaVersion = "1.0"
