package questionbank

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/vytor/quizzical/internal/errors"
	"github.com/vytor/quizzical/internal/logger"
	"github.com/vytor/quizzical/internal/models"
)

const fieldSep = ";"

// Parse reads one question per line. Records that cannot be turned into a
// question are skipped and reported; the rest of the file still loads.
func Parse(r io.Reader) ([]models.Question, []error) {
	var (
		questions []models.Question
		problems  []error
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		q, err := parseLine(lineNo, line)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		questions = append(questions, q)
	}
	if err := scanner.Err(); err != nil {
		problems = append(problems, fmt.Errorf("read questions: %w", err))
	}
	return questions, problems
}

func parseLine(lineNo int, line string) (models.Question, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) < 3 {
		return models.Question{}, errors.NewMalformedQuestionError(lineNo, fmt.Sprintf("expected at least 3 fields, got %d", len(fields)))
	}

	q := models.Question{
		Type: models.QuestionType(fields[0]),
		Text: fields[1],
	}
	if !q.Type.Valid() {
		return models.Question{}, errors.NewMalformedQuestionError(lineNo, fmt.Sprintf("unknown question type %q", fields[0]))
	}
	if strings.TrimSpace(q.Text) == "" {
		return models.Question{}, errors.NewMalformedQuestionError(lineNo, "question text is empty")
	}

	switch q.Type {
	case models.TypeOrdering:
		q.OrderedAnswer = slices.Clone(fields[2:])
		q.Options = slices.Clone(fields[2:])
		if len(q.OrderedAnswer) < 2 {
			return models.Question{}, errors.NewMalformedQuestionError(lineNo, "ordering question needs at least 2 items")
		}
	case models.TypeMultipleChoice:
		q.Answer = fields[2]
		q.Options = slices.Clone(fields[2:])
		if len(q.Options) < 2 {
			return models.Question{}, errors.NewMalformedQuestionError(lineNo, "multiple choice question needs at least 2 options")
		}
	case models.TypeTrueFalse:
		q.Answer = fields[2]
		if q.Answer != "true" && q.Answer != "false" {
			return models.Question{}, errors.NewMalformedQuestionError(lineNo, fmt.Sprintf("true/false answer must be \"true\" or \"false\", got %q", q.Answer))
		}
		if len(fields) > 3 {
			q.Explanation = fields[3]
		}
	default:
		q.Answer = fields[2]
	}
	return q, nil
}

// Load parses the question file at path and logs every skipped record.
func Load(path string) (*Bank, error) {
	log := logger.Default().WithPrefix("questionbank")

	f, err := os.Open(path)
	if err != nil {
		log.Error("failed to open question file: %v", err)
		return nil, fmt.Errorf("open questions: %w", err)
	}
	defer f.Close()

	questions, problems := Parse(f)
	for _, p := range problems {
		log.Warn("skipping question record: %v", p)
	}
	log.Info("loaded %d questions from %s (%d skipped)", len(questions), path, len(problems))
	return NewBank(questions, len(problems)), nil
}
