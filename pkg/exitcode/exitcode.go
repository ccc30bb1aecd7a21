// Package exitcode provides standardized exit codes for ruletune
package exitcode

// Exit codes for the ruletune CLI
const (
	Success         = 0
	GeneralError    = 1
	ConfigError     = 2
	MappingError    = 3
	CorpusError     = 4
	FileSystemError = 5
	PolicyError     = 6
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case MappingError:
		return "Level tuning file error"
	case CorpusError:
		return "Rule corpus error"
	case FileSystemError:
		return "File system error"
	case PolicyError:
		return "Denied by policy"
	default:
		return "Unknown error"
	}
}
