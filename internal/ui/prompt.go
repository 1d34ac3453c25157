package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter collects interactive answers. The reconciliation engine and the
// sync operations depend on this interface rather than on the terminal, so
// tests can script every flow.
type Prompter interface {
	// Confirm asks a yes/no question and returns the answer.
	Confirm(message string, defaultYes bool) (bool, error)

	// Input asks for a free-form line. validate may be nil; when it
	// returns an error the question is asked again.
	Input(message string, defaultValue string, validate func(string) error) (string, error)

	// Select asks the user to pick exactly one option and returns its index.
	Select(message string, options []string) (int, error)

	// MultiSelect asks the user to pick one or more options and returns
	// their indexes. At least one selection is required.
	MultiSelect(message string, options []string) ([]int, error)
}

// StdinPrompter reads answers line by line from an input stream, writing
// questions to an output stream. It is the production Prompter backed by
// os.Stdin/os.Stdout.
type StdinPrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewStdinPrompter(in io.Reader, out io.Writer) *StdinPrompter {
	return &StdinPrompter{scanner: bufio.NewScanner(in), out: out}
}

func (p *StdinPrompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

func (p *StdinPrompter) Confirm(message string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", message, hint)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

func (p *StdinPrompter) Input(message string, defaultValue string, validate func(string) error) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(p.out, "%s %s: ", message, Muted.Sprintf("[%s]", defaultValue))
		} else {
			fmt.Fprintf(p.out, "%s: ", message)
		}
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			line = defaultValue
		}
		if validate != nil {
			if err := validate(line); err != nil {
				fmt.Fprintln(p.out, Warning.Sprint(err.Error()))
				continue
			}
		}
		return line, nil
	}
}

func (p *StdinPrompter) Select(message string, options []string) (int, error) {
	fmt.Fprintln(p.out, message)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	for {
		fmt.Fprintf(p.out, "Enter a number (1-%d): ", len(options))
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintln(p.out, "Invalid selection.")
	}
}

func (p *StdinPrompter) MultiSelect(message string, options []string) ([]int, error) {
	fmt.Fprintln(p.out, message)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	for {
		fmt.Fprintf(p.out, "Enter numbers separated by commas (e.g. 1,3): ")
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		parts := strings.Split(line, ",")
		var picks []int
		seen := make(map[int]bool)
		valid := true
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil || n < 1 || n > len(options) {
				valid = false
				break
			}
			if !seen[n-1] {
				seen[n-1] = true
				picks = append(picks, n-1)
			}
		}
		if valid && len(picks) > 0 {
			return picks, nil
		}
		fmt.Fprintln(p.out, "Select at least one valid option.")
	}
}
