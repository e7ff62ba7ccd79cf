package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/locfold/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/locfold/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/locfold/internal/version.Date={{.Date}}
)

// Info formats the build information for `locfold version`
func Info(program string) string {
	return fmt.Sprintf("%s version %s\n  commit: %s\n  built:  %s\n", program, Version, Commit, Date)
}
