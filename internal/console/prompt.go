package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter drives the interactive Add forms opened by dashboard quick
// actions. It reads one line per field.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// Ask prints the label and returns the trimmed line typed in response.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.w, "%s: ", label)
	line, err := p.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskBool asks a yes/no question; an empty answer keeps the default.
func (p *Prompter) AskBool(label string, def bool) (bool, error) {
	hint := "Y/n"
	if !def {
		hint = "y/N"
	}
	answer, err := p.Ask(fmt.Sprintf("%s [%s]", label, hint))
	if err != nil {
		return def, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
