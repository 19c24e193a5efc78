// Package export renders a graded quiz as plain text.
package export

import (
	"strings"
	"text/template"

	"github.com/vytor/quizzical/internal/models"
	"github.com/vytor/quizzical/internal/quiz"
)

type Options struct {
	Color         bool `json:"color"`
	ShowQuestion  bool `json:"show_question"`
	ShowOptions   bool `json:"show_options"`
	ShowAnswer    bool `json:"show_answer"`
	ShowResponses bool `json:"show_responses"`
}

// DefaultOptions turns everything on.
func DefaultOptions() Options {
	return Options{Color: true, ShowQuestion: true, ShowOptions: true, ShowAnswer: true, ShowResponses: true}
}

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

const quizTemplate = `{{with .Stats}}Quiz taken {{.Date}}
Score: {{.Correct}}/{{.Total}} in {{duration .Time}}
{{end}}{{range $i, $q := .Questions}}
{{add $i 1}}. [{{$q.Type.Name}}]{{if $.Opts.ShowQuestion}} {{$q.Text}}{{end}}{{with $q.Correct}} {{mark .}}{{end}}
{{- if and $.Opts.ShowOptions $q.Options}}
   Options: {{join $q.Options}}{{end}}
{{- if $.Opts.ShowAnswer}}
   Answer: {{answer $q}}{{end}}
{{- if $.Opts.ShowResponses}}
   Response: {{response $q}}{{end}}
{{end}}`

type view struct {
	Stats     *models.QuizStats
	Questions []models.QuizQuestion
	Opts      Options
}

// Render writes rec as text according to opts.
func Render(rec models.QuizRecord, opts Options) (string, error) {
	funcs := template.FuncMap{
		"add":      func(a, b int) int { return a + b },
		"join":     func(s []string) string { return strings.Join(s, ", ") },
		"duration": quiz.FormatDuration,
		"answer":   FormatAnswer,
		"response": FormatResponse,
		"mark": func(correct *bool) string {
			return mark(*correct, opts.Color)
		},
	}

	t, err := template.New("quiz").Funcs(funcs).Parse(quizTemplate)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := t.Execute(&b, view{Stats: rec.Stats, Questions: rec.Questions, Opts: opts}); err != nil {
		return "", err
	}
	return b.String(), nil
}

func mark(correct, color bool) string {
	word, code := "(incorrect)", ansiRed
	if correct {
		word, code = "(correct)", ansiGreen
	}
	if !color {
		return word
	}
	return code + word + ansiReset
}

// FormatAnswer renders the expected answer for display: true/false are
// capitalized and orderings are joined with ", ".
func FormatAnswer(q models.QuizQuestion) string {
	if q.Type == models.TypeOrdering {
		return strings.Join(q.OrderedAnswer, ", ")
	}
	switch q.Answer {
	case "true":
		return "True"
	case "false":
		return "False"
	}
	return q.Answer
}

// FormatResponse renders what was answered. For ordering questions that is
// the final displayed order.
func FormatResponse(q models.QuizQuestion) string {
	switch q.Type {
	case models.TypeOrdering:
		return strings.Join(q.Options, ", ")
	case models.TypeTrueFalse:
		switch q.Selected {
		case models.SelectedTrue:
			return "True"
		case models.SelectedFalse:
			return "False"
		}
	}
	if q.Selected == models.SelectedNone {
		return "(no response)"
	}
	return q.Selected
}
