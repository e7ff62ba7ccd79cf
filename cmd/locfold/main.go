package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/locfold/internal/cli"
	"github.com/arthur-debert/locfold/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if code, ok := cli.ExitCode(err); ok {
			os.Exit(code)
		}

		fmt.Fprintln(os.Stderr, style.Render(fmt.Sprintf("[error]Error:[/error] %v", err)))
		os.Exit(1)
	}
}
