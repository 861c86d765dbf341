package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptPassword reads a password from the terminal without echo. When stdin
// is not a terminal the first line of input is used.
func PromptPassword(out io.Writer, label string, confirm bool) (string, error) {
	first, err := readSecret(out, label)
	if err != nil {
		return "", err
	}
	if !confirm {
		return first, nil
	}
	second, err := readSecret(out, "Confirm "+strings.ToLower(label[:1])+label[1:])
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("passwords do not match")
	}
	return first, nil
}

var stdinReader = bufio.NewReader(os.Stdin)

func readSecret(out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
