// Package quiz holds the question bank and the cursor logic for walking a
// user through it.
package quiz

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/amixedcolor/aws-identity-gift/internal/gift"
)

//go:embed questions/*.yaml
var questionFS embed.FS

const questionsPerMode = 20

type questionFile struct {
	Mode      gift.Mode       `yaml:"mode"`
	Questions []gift.Question `yaml:"questions"`
}

// Bank is the full question set for every mode.
type Bank struct {
	byMode map[gift.Mode][]gift.Question
}

// LoadBank parses the embedded question files and validates them.
func LoadBank() (*Bank, error) {
	b := &Bank{byMode: make(map[gift.Mode][]gift.Question)}
	for _, m := range gift.AllModes() {
		data, err := questionFS.ReadFile("questions/" + string(m) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read %s questions: %w", m, err)
		}
		var f questionFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s questions: %w", m, err)
		}
		if f.Mode != m {
			return nil, fmt.Errorf("questions/%s.yaml declares mode %q", m, f.Mode)
		}
		b.byMode[m] = f.Questions
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// MustLoadBank is LoadBank for package-level initialisation.
func MustLoadBank() *Bank {
	b, err := LoadBank()
	if err != nil {
		panic(err)
	}
	return b
}

// Validate checks every mode has 20 questions, exactly five of them quick,
// unique ids, and options only on multiple-choice questions.
func (b *Bank) Validate() error {
	for _, m := range gift.AllModes() {
		qs := b.byMode[m]
		if len(qs) != questionsPerMode {
			return fmt.Errorf("%s: %d questions, want %d", m, len(qs), questionsPerMode)
		}
		seen := make(map[string]bool, len(qs))
		quick := 0
		for i, q := range qs {
			if q.ID == "" || q.Text == "" {
				return fmt.Errorf("%s: question %d is missing id or text", m, i)
			}
			if seen[q.ID] {
				return fmt.Errorf("%s: duplicate question id %s", m, q.ID)
			}
			seen[q.ID] = true

			switch q.Type {
			case gift.MultipleChoice:
				if len(q.Options) == 0 {
					return fmt.Errorf("%s: %s is multiple-choice without options", m, q.ID)
				}
			case gift.FreeText:
				if len(q.Options) > 0 || q.Multiple {
					return fmt.Errorf("%s: %s is free-text with options", m, q.ID)
				}
			default:
				return fmt.Errorf("%s: %s has unknown type %q", m, q.ID, q.Type)
			}

			switch q.Volume {
			case gift.VolumeQuick:
				if quick != i {
					return fmt.Errorf("%s: quick question %s follows a detailed one", m, q.ID)
				}
				quick++
			case gift.VolumeDetailed:
			default:
				return fmt.Errorf("%s: %s has unknown volume %q", m, q.ID, q.Volume)
			}
		}
		if quick != gift.VolumeQuick.QuestionCount() {
			return fmt.Errorf("%s: %d quick questions, want %d", m, quick, gift.VolumeQuick.QuestionCount())
		}
	}
	return nil
}

// ForMode returns every question of mode in bank order.
func (b *Bank) ForMode(mode gift.Mode) []gift.Question {
	return append([]gift.Question(nil), b.byMode[mode]...)
}

// Question looks up one question by id.
func (b *Bank) Question(mode gift.Mode, id string) (gift.Question, bool) {
	for _, q := range b.byMode[mode] {
		if q.ID == id {
			return q, true
		}
	}
	return gift.Question{}, false
}

func (b *Bank) QuickQuestions(mode gift.Mode) []gift.Question {
	return FilteredQuestions(b.byMode[mode], gift.VolumeQuick)
}

func (b *Bank) DetailedQuestions(mode gift.Mode) []gift.Question {
	return FilteredQuestions(b.byMode[mode], gift.VolumeDetailed)
}

// FilteredQuestions returns the questions shown for volume. Detailed is the
// full list, quick questions included.
func FilteredQuestions(questions []gift.Question, volume gift.Volume) []gift.Question {
	if volume == gift.VolumeDetailed {
		return append([]gift.Question(nil), questions...)
	}
	out := make([]gift.Question, 0, gift.VolumeQuick.QuestionCount())
	for _, q := range questions {
		if q.Volume == gift.VolumeQuick {
			out = append(out, q)
		}
	}
	return out
}
