package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "mobilescan"

	// ConfigFileName is the default config file written by init
	ConfigFileName = "mobilescan.yaml"

	// HTMLReportFileName is the default file name of the HTML report
	HTMLReportFileName = "mobilescan-report.html"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "MOBILESCAN"
)

// Exit codes of the check command
const (
	ExitCodeOK        = 0
	ExitCodeViolation = 1
	ExitCodeError     = 2
)

// Env files loaded by the serve command, first match wins
var EnvFiles = []string{".env.development", ".env"}
