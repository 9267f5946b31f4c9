package cli

// Exit codes for the relkit CLI. These support CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a fatal configuration, resolution or
	// collaborator error; details are printed to stderr
	ExitFailure = 1
)
