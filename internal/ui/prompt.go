package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ConflictChoice is the user's answer to a destination conflict prompt.
type ConflictChoice int

const (
	ChoiceSkip ConflictChoice = iota
	ChoiceOverwrite
	ChoiceAbort
)

// AskConflict prompts on out and reads one answer from in. Unrecognized
// input re-prompts; EOF aborts.
func AskConflict(in io.Reader, out io.Writer, destination string) ConflictChoice {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "%s already exists. [s]kip, [o]verwrite, [a]bort? ", destination)
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintln(out)
			return ChoiceAbort
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "s", "skip":
			return ChoiceSkip
		case "o", "overwrite":
			return ChoiceOverwrite
		case "a", "abort":
			return ChoiceAbort
		}
	}
}

// AskPassword reads a password without echoing. FERRY_PASSWORD short-circuits
// the prompt for scripted use.
func AskPassword(prompt string) (string, error) {
	if pw := os.Getenv("FERRY_PASSWORD"); pw != "" {
		return pw, nil
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
