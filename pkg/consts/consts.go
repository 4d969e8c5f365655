package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultConfigFile is the config file looked up in the working directory
	DefaultConfigFile = ".tsqlfmt.yaml"

	// DefaultExtension is the file extension formatted when none are configured
	DefaultExtension = ".sql"

	// StdinPath is the path argument that selects standard input
	StdinPath = "-"
)
