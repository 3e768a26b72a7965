package tui

// OutputFormat controls how submitted values are serialized by Encode.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints the session applies when printing
// messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the serialization format used by Encode.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithMaxAttempts caps how many times a single field is re-prompted after a
// rejection. Zero means unlimited.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}
