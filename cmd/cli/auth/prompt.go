package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// passwordOrPrompt returns flagValue, or reads a password from stdin when it is empty.
// Terminals get a no-echo prompt; pipes are read line by line.
func passwordOrPrompt(flagValue string, stdin io.Reader, stdout io.Writer) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(stdout, "Password: ")
	defer fmt.Fprintln(stdout)

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return "", io.EOF
}
