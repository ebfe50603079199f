package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/chzyer/readline"
)

// ─── Plain I/O helpers ───────────────────────────────────────────────────────

// stdinReader is the single shared buffered reader over os.Stdin.
// One instance is required — multiple buffered readers over the same fd
// would each buffer ahead and consume each other's input.
var stdinReader = bufio.NewReader(os.Stdin)
var ansiEscapeRE = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
var caretEscapeRE = regexp.MustCompile(`\^\[\[[0-9;?]*[ -/]*[@-~]`)

// readLine prints "  Field [current]: " and reads a line.
// Returns current if the operator presses Enter without typing anything,
// and errCancelled on Ctrl+C or closed stdin.
func readLine(field, current string) (string, error) {
	prompt := ""
	if current != "" {
		prompt = fmt.Sprintf("  %s [\033[36m%s\033[0m]: ", field, current)
	} else {
		prompt = fmt.Sprintf("  %s: ", field)
	}
	s, err := readPromptLine(prompt)
	if err != nil {
		return "", err
	}
	if s == "" {
		return current, nil
	}
	return s, nil
}

// readDiskSize reads a validated whole-gigabyte disk size, re-prompting
// until the input parses as a positive integer.
func readDiskSize(field string, defaultGB int) (int, error) {
	for {
		s, err := readPromptLine(fmt.Sprintf("  %s [\033[36m%d\033[0m]: ", field, defaultGB))
		if err != nil {
			return 0, err
		}
		if s == "" {
			return defaultGB, nil
		}
		v, ok := parseDiskSize(s)
		if !ok {
			fmt.Println("  Disk size must be a whole number greater than zero")
			continue
		}
		return v, nil
	}
}

// parseDiskSize accepts whole numbers strictly greater than zero.
// Fractional and non-numeric input is rejected here, at collection time,
// never later in the run.
func parseDiskSize(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// readYesNo prints "  msg [Y/n]: " and returns true for y/yes, false for n/no.
func readYesNo(msg string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	for {
		s, err := readPromptLine(fmt.Sprintf("  %s %s: ", msg, hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Println("  Enter y or n")
	}
}

func readPromptLine(prompt string) (string, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err == nil {
		defer func() {
			_ = rl.Close()
			stdinReader.Reset(os.Stdin)
		}()
		line, err := rl.Readline()
		if err == nil {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", errCancelled
		}
		return "", err
	}

	fmt.Print(prompt)
	line, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", errCancelled
	}
	return sanitizeConsoleInput(line), nil
}

func sanitizeConsoleInput(raw string) string {
	raw = ansiEscapeRE.ReplaceAllString(raw, "")
	raw = caretEscapeRE.ReplaceAllString(raw, "")
	raw = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, raw)
	return strings.TrimSpace(raw)
}

// surveySelect wraps survey.AskOne for a Select prompt and drains stdin
// afterward to discard any CPR responses (\033[row;colR) that the terminal
// may have queued in response to survey's \033[6n cursor queries.
// Ctrl+C during the prompt maps to errCancelled.
func surveySelect(message string, options []string, defaultOpt string) (string, error) {
	q := &survey.Select{Message: message, Options: options}
	if defaultOpt != "" {
		q.Default = defaultOpt
	}
	var choice string
	if err := survey.AskOne(q, &choice); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", errCancelled
		}
		return "", err
	}
	drainStdin()
	return choice, nil
}
