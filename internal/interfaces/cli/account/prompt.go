package account

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads operator input.
type Prompter interface {
	Prompt(label string) (string, error)
	PromptPassword(label string) (string, error)
}

// terminalPrompter reads from stdin. Passwords are not echoed when stdin is
// a terminal; piped input is read line by line.
type terminalPrompter struct {
	in     *bufio.Reader
	out    io.Writer
	stdin  *os.File
	isTerm bool
}

func newTerminalPrompter(out io.Writer) *terminalPrompter {
	return &terminalPrompter{
		in:     bufio.NewReader(os.Stdin),
		out:    out,
		stdin:  os.Stdin,
		isTerm: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

func (p *terminalPrompter) Prompt(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *terminalPrompter) PromptPassword(label string) (string, error) {
	if !p.isTerm {
		return p.Prompt(label)
	}

	fmt.Fprint(p.out, label)
	raw, err := term.ReadPassword(int(p.stdin.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

// promptNewPassword asks twice and fails when the entries differ.
func promptNewPassword(p Prompter) (string, error) {
	first, err := p.PromptPassword("New password: ")
	if err != nil {
		return "", err
	}
	second, err := p.PromptPassword("Repeat password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("passwords do not match")
	}
	return first, nil
}

func promptIfEmpty(p Prompter, value, label string) (string, error) {
	if value = strings.TrimSpace(value); value != "" {
		return value, nil
	}
	return p.Prompt(label)
}
