package envelope

// Builder constructs Response envelopes using a fluent API.
type Builder struct {
	resp *Response
}

// New creates a new envelope builder.
func New() *Builder {
	return &Builder{
		resp: &Response{
			SchemaVersion: CurrentSchemaVersion,
		},
	}
}

// Data sets the command-specific payload.
func (b *Builder) Data(data interface{}) *Builder {
	b.resp.Data = data
	return b
}

// Command records which command produced the response.
func (b *Builder) Command(name string) *Builder {
	b.ensureMeta()
	b.resp.Meta.Command = name
	return b
}

// ProjectRoot records the project root the command ran against.
func (b *Builder) ProjectRoot(root string) *Builder {
	b.ensureMeta()
	b.resp.Meta.ProjectRoot = root
	return b
}

// Duration records how long the command took.
func (b *Builder) Duration(ms int64) *Builder {
	b.ensureMeta()
	b.resp.Meta.DurationMs = ms
	return b
}

// Warn adds a warning message.
func (b *Builder) Warn(message string) *Builder {
	b.resp.Warnings = append(b.resp.Warnings, Warning{Message: message})
	return b
}

// WarnCode adds a warning with a machine-readable code.
func (b *Builder) WarnCode(code, message string) *Builder {
	b.resp.Warnings = append(b.resp.Warnings, Warning{Code: code, Message: message})
	return b
}

// Error sets the error string. Data may still carry partial results.
func (b *Builder) Error(message string) *Builder {
	b.resp.Error = &message
	return b
}

// Build returns the completed response.
func (b *Builder) Build() *Response {
	return b.resp
}

func (b *Builder) ensureMeta() {
	if b.resp.Meta == nil {
		b.resp.Meta = &Meta{}
	}
}
