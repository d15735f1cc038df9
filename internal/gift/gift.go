// Package gift defines the core types shared across the diagnostic flow:
// modes, volumes, questions, user responses and the diagnostic result.
package gift

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
)

// Mode selects which question set and which prompt instruction block is used.
type Mode string

const (
	ModeTechFit   Mode = "tech-fit"
	ModeVibeFit   Mode = "vibe-fit"
	ModeAdventure Mode = "adventure"
)

// AllModes lists the modes in display order.
func AllModes() []Mode {
	return []Mode{ModeTechFit, ModeVibeFit, ModeAdventure}
}

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.TrimSpace(s))
	if !m.Valid() {
		return "", apperr.Validation("parse mode", apperr.MsgInvalidMode).
			WithDetails(map[string]any{"mode": s})
	}
	return m, nil
}

// Valid reports whether m is one of the three known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeTechFit, ModeVibeFit, ModeAdventure:
		return true
	}
	return false
}

// Title returns the display title for the mode.
func (m Mode) Title() string {
	switch m {
	case ModeTechFit:
		return "Tech-Fit"
	case ModeVibeFit:
		return "Vibe-Fit"
	case ModeAdventure:
		return "Adventure"
	default:
		return string(m)
	}
}

// Subtitle returns the short analysis angle shown under the title.
func (m Mode) Subtitle() string {
	switch m {
	case ModeTechFit:
		return "スキルと経験で分析"
	case ModeVibeFit:
		return "性格とライフスタイルで分析"
	case ModeAdventure:
		return "憧れと挑戦心で分析"
	default:
		return ""
	}
}

// Description returns the longer explanation shown on the mode selector.
func (m Mode) Description() string {
	switch m {
	case ModeTechFit:
		return "あなたの技術スキルと開発経験に基づいて、最適なAWSサービスを推薦します。"
	case ModeVibeFit:
		return "あなたの性格や働き方、ライフスタイルに基づいて、相性の良いAWSサービスを推薦します。"
	case ModeAdventure:
		return "あなたの憧れや挑戦したいことに基づいて、意外性のあるAWSサービスを推薦します。"
	default:
		return ""
	}
}

// Icon returns the emoji used for the mode.
func (m Mode) Icon() string {
	switch m {
	case ModeTechFit:
		return "💻"
	case ModeVibeFit:
		return "✨"
	case ModeAdventure:
		return "🚀"
	default:
		return "🎁"
	}
}

// Volume is the quiz length tier.
type Volume string

const (
	VolumeQuick    Volume = "quick"
	VolumeDetailed Volume = "detailed"
)

// ParseVolume validates a volume string.
func ParseVolume(s string) (Volume, error) {
	switch v := Volume(strings.TrimSpace(s)); v {
	case VolumeQuick, VolumeDetailed:
		return v, nil
	}
	return "", apperr.Validation("parse volume", apperr.MsgInvalidResponse).
		WithDetails(map[string]any{"volume": s})
}

// Label returns the display name of the volume.
func (v Volume) Label() string {
	if v == VolumeDetailed {
		return "詳細診断"
	}
	return "クイック診断"
}

// Duration returns the approximate time the volume takes.
func (v Volume) Duration() string {
	if v == VolumeDetailed {
		return "約5分"
	}
	return "約1分"
}

// QuestionCount returns the number of questions shown for the volume.
func (v Volume) QuestionCount() int {
	if v == VolumeDetailed {
		return 20
	}
	return 5
}

// QuestionType is the input style of a question.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	FreeText       QuestionType = "free-text"
)

// Question is one static quiz question.
type Question struct {
	ID       string       `json:"id" yaml:"id"`
	Text     string       `json:"text" yaml:"text"`
	Type     QuestionType `json:"type" yaml:"type"`
	Options  []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Multiple bool         `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Required bool         `json:"required" yaml:"required"`
	Volume   Volume       `json:"volume" yaml:"volume"`
}

// Answer holds either a single string or a list of selected options.
// It encodes to JSON as a string or as an array accordingly.
type Answer struct {
	Values []string
	List   bool
}

// TextAnswer builds a single-string answer.
func TextAnswer(s string) Answer {
	return Answer{Values: []string{s}}
}

// ChoiceAnswer builds a multi-select answer.
func ChoiceAnswer(choices ...string) Answer {
	return Answer{Values: append([]string(nil), choices...), List: true}
}

// Text returns the single value of a non-list answer, or the values joined.
func (a Answer) Text() string {
	if !a.List && len(a.Values) == 1 {
		return a.Values[0]
	}
	return a.String()
}

// String renders the answer the way it is sent to the model.
func (a Answer) String() string {
	return strings.Join(a.Values, ", ")
}

// Contains reports whether the answer includes the given option.
func (a Answer) Contains(option string) bool {
	for _, v := range a.Values {
		if v == option {
			return true
		}
	}
	return false
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.List {
		vals := a.Values
		if vals == nil {
			vals = []string{}
		}
		return json.Marshal(vals)
	}
	return json.Marshal(a.Text())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = TextAnswer(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("answer must be a string or a list of strings: %w", err)
	}
	*a = ChoiceAnswer(list...)
	return nil
}

// UserResponse is the answer to one question.
type UserResponse struct {
	QuestionID string `json:"questionId"`
	Answer     Answer `json:"answer"`
}

// Service is one entry of the AWS service catalog.
type Service struct {
	Category    string `json:"category"`
	ServiceName string `json:"serviceName"`
}

// DiagnosticResult is one quiz outcome. It is never mutated after creation.
type DiagnosticResult struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Mode        Mode      `json:"mode"`
	Service     Service   `json:"service"`
	Catchphrase string    `json:"catchphrase"`
	AILetter    string    `json:"aiLetter"`
	NextActions []string  `json:"nextActions"`

	// GiftCardImage is a base64 image payload. It is never persisted.
	GiftCardImage string `json:"-"`
}

// StoredResults is the envelope written under the archive key.
type StoredResults struct {
	Results []DiagnosticResult `json:"results"`
}
