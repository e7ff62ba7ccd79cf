// Package confirmations provides UI implementations for confirmation dialogs.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConsoleDialog asks yes/no questions on a console
type ConsoleDialog struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleDialog creates a new console confirmation dialog
func NewConsoleDialog(in io.Reader, out io.Writer) *ConsoleDialog {
	return &ConsoleDialog{in: bufio.NewReader(in), out: out}
}

// Confirm prints question and reads one line. An empty answer, or end of
// input, selects the default.
func (d *ConsoleDialog) Confirm(question string, defaultYes bool) (bool, error) {
	marker := "[y/N]"
	if defaultYes {
		marker = "[Y/n]"
	}
	if _, err := fmt.Fprintf(d.out, "%s %s: ", question, marker); err != nil {
		return false, err
	}

	line, err := d.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	response := strings.ToLower(strings.TrimSpace(line))
	if response == "" {
		return defaultYes, nil
	}
	return response == "y" || response == "yes", nil
}
