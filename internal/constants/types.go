package constants

// Transport names.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Tool variants. A shell tool accepts the full request shape; a bash tool
// accepts only the command and runs it with defaults.
const (
	VariantShell = "shell"
	VariantBash  = "bash"
)

// Default tool names.
const (
	ToolExecuteShell = "execute_shell_command"
	ToolExecuteBash  = "execute_bash_command"
)
