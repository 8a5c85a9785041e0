// Copyright © 2018 One Concern

// Package wizard asks the operator for confirmations and free text.
package wizard

import (
	"fmt"
	"strings"

	"github.com/oneconcern/repoassist/pkg/errors"
)

// TipPrefix marks the lines of a message template which are removed once edited
const TipPrefix = "# [TIP]: "

var (
	// ErrEmptyMessage indicates that the operator entered no message
	ErrEmptyMessage = errors.New("empty message")

	// ErrNoAnswer indicates that no more answers can be read
	ErrNoAnswer = errors.New("no answer available")

	// ErrInvalidChoice indicates an answer outside of the proposed choices
	ErrInvalidChoice = errors.New("invalid choice")
)

// Prompter interacts with the operator
type Prompter interface {
	// Confirm asks a yes/no question
	Confirm(question string) (bool, error)

	// Input asks for a single line. An empty answer yields the default value.
	Input(question, defaultValue string) (string, error)

	// ChooseOne asks to pick one of the choices
	ChooseOne(question string, choices []string) (string, error)

	// Message asks for a multi-line message, starting from a template.
	// Tip lines are stripped from the result.
	Message(template string) (string, error)
}

// Template builds a message template from tips and prefilled lines
func Template(tips []string, lines []string) string {
	var b strings.Builder
	for _, tip := range tips {
		b.WriteString(TipPrefix)
		b.WriteString(tip)
		b.WriteString("\n")
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// StripTips removes tip lines and surrounding blanks from an edited message
func StripTips(message string) string {
	lines := strings.Split(message, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, TipPrefix) {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t\r"))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// parseYesNo accepts y, yes, n and no in any case. Anything else, blank included, is invalid.
func parseYesNo(answer string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, ErrInvalidChoice.WrapMessage(fmt.Sprintf("%q, please answer y or n", answer), nil)
}

func pick(answer string, choices []string) (string, error) {
	answer = strings.TrimSpace(answer)
	for _, c := range choices {
		if c == answer {
			return c, nil
		}
	}
	return "", ErrInvalidChoice.WrapMessage(fmt.Sprintf("%q, please answer one of: %s", answer, strings.Join(choices, ", ")), nil)
}
