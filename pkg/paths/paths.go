// Package paths resolves the resource root named on the command line or in
// configuration.
//
// A configured relative root such as composeApp/src/commonMain/composeResources
// describes a location inside a project. It is looked up below the working
// directory first and then below the git repository root, so a project
// configuration works from any subdirectory of the repository. Roots typed on
// the command line are always relative to the working directory.
package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/locfold/pkg/errors"
	"github.com/arthur-debert/locfold/pkg/logging"
)

// EnvHome is consulted when the home directory cannot be determined otherwise
const EnvHome = "HOME"

// Resolution describes where a resource root was found
type Resolution struct {
	Path string
	// FromProjectRoot is set when the root was found below the git
	// repository root rather than the working directory.
	FromProjectRoot bool
}

// gitRoot is swapped out in tests
var gitRoot = findGitRoot

// ResolveRoot makes root absolute. configured selects the project root
// fallback for relative paths.
func ResolveRoot(root string, configured bool) (Resolution, error) {
	logger := logging.GetLogger("paths")

	if root == "" {
		return Resolution{}, errors.New(errors.ErrInvalidInput, "empty resource root")
	}

	expanded := ExpandHome(root)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return Resolution{}, errors.Wrapf(err, errors.ErrInternal, "failed to resolve %s", root)
	}
	res := Resolution{Path: filepath.Clean(abs)}

	if !configured || filepath.IsAbs(expanded) {
		return res, nil
	}
	if _, err := os.Stat(res.Path); err == nil {
		return res, nil
	}

	top, err := gitRoot()
	if err != nil {
		logger.Debug().Err(err).Msg("Not in a git repository, keeping working directory root")
		return res, nil
	}

	candidate := filepath.Join(top, expanded)
	if _, err := os.Stat(candidate); err != nil {
		return res, nil
	}

	logger.Debug().Str("git_root", top).Str("root", candidate).Msg("Resolved resource root against git root")
	return Resolution{Path: candidate, FromProjectRoot: true}, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}

	top := strings.TrimSpace(string(output))
	if top == "" {
		return "", errors.New(errors.ErrPathNotFound, "git root is empty")
	}
	return top, nil
}

// ExpandHome expands a leading ~ to the home directory. ~user forms are
// returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
