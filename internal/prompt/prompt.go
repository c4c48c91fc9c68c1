// Package prompt models interactive confirmation as an injected capability,
// so destructive operations and disambiguation work identically under a real
// terminal, --force, and automated tests.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter asks the user blocking questions on the terminal.
type Prompter interface {
	// Confirm asks a yes/no question and returns the answer; def is used on
	// an empty reply.
	Confirm(question string, def bool) (bool, error)
	// Select asks for one of the allowed indices. It returns canceled=true
	// when the user quits instead of choosing.
	Select(question string, allowed []int) (choice int, canceled bool, err error)
}

// Terminal is the line-oriented Prompter used for real invocations.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal builds a Terminal reading answers from in and writing
// questions to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(t.out, "%s [%s]: ", question, hint)
		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.out, "Please answer y or n.")
	}
}

func (t *Terminal) Select(question string, allowed []int) (int, bool, error) {
	valid := make(map[int]struct{}, len(allowed))
	for _, idx := range allowed {
		valid[idx] = struct{}{}
	}
	for {
		fmt.Fprintf(t.out, "%s (or q to cancel): ", question)
		line, err := t.readLine()
		if err != nil {
			return 0, false, err
		}
		if strings.EqualFold(line, "q") {
			return 0, true, nil
		}
		choice, err := strconv.Atoi(line)
		if err == nil {
			if _, ok := valid[choice]; ok {
				return choice, false, nil
			}
		}
		fmt.Fprintln(t.out, "Not a selectable entry.")
	}
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && (line == "" || err != io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
