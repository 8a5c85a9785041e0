package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/oneconcern/repoassist/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const messageTerminator = "~"

// ErrAborted indicates that the operator quit a form
var ErrAborted = errors.New("aborted by the operator")

// Console prompts with interactive forms on a terminal, or with plain line prompts
// (accessible mode) when the input is not a terminal.
type Console struct {
	in         io.Reader
	answers    *answerReader
	out        io.Writer
	editor     string
	accessible bool
	theme      *huh.Theme
	l          *zap.Logger
}

// ConsoleOption configures a console prompter
type ConsoleOption func(*Console)

// WithEditor sets the external editor command for messages. Defaults to $EDITOR.
func WithEditor(editor string) ConsoleOption {
	return func(c *Console) {
		c.editor = editor
	}
}

// WithAccessible forces plain line prompts, or interactive forms
func WithAccessible(accessible bool) ConsoleOption {
	return func(c *Console) {
		c.accessible = accessible
	}
}

// WithLogger for the console prompter
func WithLogger(l *zap.Logger) ConsoleOption {
	return func(c *Console) {
		if l != nil {
			c.l = l
		}
	}
}

// NewConsole prompter reading answers from in and writing questions to out
func NewConsole(in io.Reader, out io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		in:         in,
		out:        out,
		editor:     os.Getenv("EDITOR"),
		accessible: !isTerminal(in) || os.Getenv("ACCESSIBLE") != "",
		theme:      huh.ThemeBase16(),
		l:          zap.NewNop(),
	}
	for _, apply := range opts {
		apply(c)
	}
	if c.accessible {
		c.answers = &answerReader{r: in}
		c.in = c.answers
	}
	return c
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// answerReader hands out input one byte at a time, so that a line prompt never
// consumes the answers to the next questions. It records when input runs out.
type answerReader struct {
	r    io.Reader
	read int
	eof  bool
}

func (a *answerReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	n, err := a.r.Read(p)
	a.read += n
	if err == io.EOF {
		a.eof = true
	}
	return n, err
}

func (c *Console) run(field huh.Field) error {
	var before int
	if c.answers != nil {
		before = c.answers.read
	}

	err := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(c.accessible).
		WithInput(c.in).
		WithOutput(c.out).
		WithTheme(c.theme).
		WithShowHelp(!c.accessible).
		Run()
	switch {
	case errors.Is(err, huh.ErrUserAborted):
		return ErrAborted
	case err != nil:
		return ErrNoAnswer.Wrap(err)
	case c.answers != nil && c.answers.eof && c.answers.read == before:
		return ErrNoAnswer
	}
	return nil
}

// Confirm a yes/no question. It asks again until the answer is a yes or a no.
func (c *Console) Confirm(question string) (bool, error) {
	for {
		var answer string
		err := c.run(huh.NewInput().
			Title(question + " [y/n]").
			Value(&answer).
			Validate(func(s string) error {
				_, err := parseYesNo(s)
				return err
			}))
		if err != nil {
			return false, err
		}
		ok, err := parseYesNo(answer)
		if err == nil {
			return ok, nil
		}
		c.l.Debug("invalid answer", zap.String("question", question), zap.String("answer", answer))
	}
}

// Input a single line
func (c *Console) Input(question, defaultValue string) (string, error) {
	title := question
	if defaultValue != "" {
		title = fmt.Sprintf("%s [%s]", question, defaultValue)
	}
	answer := defaultValue
	if err := c.run(huh.NewInput().Title(title).Placeholder(defaultValue).Value(&answer)); err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// ChooseOne of the choices. It asks again until the answer is valid.
func (c *Console) ChooseOne(question string, choices []string) (string, error) {
	var choice string
	if !c.accessible {
		err := c.run(huh.NewSelect[string]().
			Title(question).
			Options(huh.NewOptions(choices...)...).
			Value(&choice))
		return choice, err
	}

	for {
		err := c.run(huh.NewInput().
			Title(fmt.Sprintf("%s (%s)", question, strings.Join(choices, "/"))).
			Value(&choice).
			Validate(func(s string) error {
				_, err := pick(s, choices)
				return err
			}))
		if err != nil {
			return "", err
		}
		picked, err := pick(choice, choices)
		if err == nil {
			return picked, nil
		}
		choice = ""
	}
}

// Message edits the template in a text area, which opens the external editor on ctrl+e.
// In accessible mode the message is typed line by line, ending with a line terminated by "~".
func (c *Console) Message(template string) (string, error) {
	if c.accessible {
		return c.typeMessage(template)
	}

	msg := template
	text := huh.NewText().
		Title("Release message").
		Description("Tip lines are removed. ctrl+e opens the editor.").
		Lines(12).
		CharLimit(0).
		Value(&msg)
	if args := strings.Fields(c.editor); len(args) > 0 {
		text = text.Editor(args...)
	}
	if err := c.run(text); err != nil {
		return "", err
	}
	return nonEmpty(StripTips(msg))
}

func (c *Console) typeMessage(template string) (string, error) {
	fmt.Fprintln(c.out, template)
	fmt.Fprintf(c.out, "Enter the message, end with a line terminated by %q:\n", messageTerminator)

	var lines []string
	for {
		var line string
		err := c.run(huh.NewInput().Title(">").Value(&line))
		if errors.Is(err, ErrNoAnswer) {
			break
		}
		if err != nil {
			return "", err
		}
		line = strings.TrimRight(line, "\r")
		if strings.HasSuffix(line, messageTerminator) {
			lines = append(lines, strings.TrimSuffix(line, messageTerminator))
			break
		}
		lines = append(lines, line)
	}
	return nonEmpty(StripTips(strings.Join(lines, "\n")))
}

func nonEmpty(msg string) (string, error) {
	if msg == "" {
		return "", ErrEmptyMessage
	}
	return msg, nil
}
