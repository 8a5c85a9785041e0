package wizard

import "strings"

// Scripted replays prepared answers, in order, whatever the question.
//
// It is used when no terminal is attached, and in tests.
type Scripted struct {
	Answers []string
	Asked   []string
}

var _ Prompter = &Scripted{}

// NewScripted prompter
func NewScripted(answers ...string) *Scripted {
	return &Scripted{Answers: answers}
}

func (s *Scripted) next(question string) (string, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Answers) == 0 {
		return "", ErrNoAnswer.WrapMessage(question, nil)
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}

// Confirm with the next answer, which must be a yes or a no
func (s *Scripted) Confirm(question string) (bool, error) {
	answer, err := s.next(question)
	if err != nil {
		return false, err
	}
	return parseYesNo(answer)
}

// Input the next answer, or the default if it is empty
func (s *Scripted) Input(question, defaultValue string) (string, error) {
	answer, err := s.next(question)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return defaultValue, nil
	}
	return strings.TrimSpace(answer), nil
}

// ChooseOne with the next answer, which must be one of the choices
func (s *Scripted) ChooseOne(question string, choices []string) (string, error) {
	answer, err := s.next(question)
	if err != nil {
		return "", err
	}
	return pick(answer, choices)
}

// Message is the next answer, with tips stripped
func (s *Scripted) Message(template string) (string, error) {
	answer, err := s.next(template)
	if err != nil {
		return "", err
	}
	return nonEmpty(StripTips(answer))
}
