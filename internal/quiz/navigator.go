package quiz

import (
	"fmt"
	"strings"

	"github.com/amixedcolor/aws-identity-gift/internal/gift"
)

// Navigator tracks the cursor and the responses of one quiz run. Responses
// survive volume switches.
type Navigator struct {
	Questions    []gift.Question
	CurrentIndex int
	Volume       gift.Volume
	Responses    []gift.UserResponse
}

// NewNavigator starts at the first question of volume.
func NewNavigator(questions []gift.Question, volume gift.Volume) *Navigator {
	return &Navigator{Questions: questions, Volume: volume}
}

// Filtered returns the questions for the active volume.
func (n *Navigator) Filtered() []gift.Question {
	return FilteredQuestions(n.Questions, n.Volume)
}

// Current returns the question under the cursor.
func (n *Navigator) Current() (gift.Question, bool) {
	qs := n.Filtered()
	if n.CurrentIndex < 0 || n.CurrentIndex >= len(qs) {
		return gift.Question{}, false
	}
	return qs[n.CurrentIndex], true
}

// Answer records answer for questionID, replacing any earlier one.
func (n *Navigator) Answer(questionID string, answer gift.Answer) {
	for i := range n.Responses {
		if n.Responses[i].QuestionID == questionID {
			n.Responses[i].Answer = answer
			return
		}
	}
	n.Responses = append(n.Responses, gift.UserResponse{QuestionID: questionID, Answer: answer})
}

// Response returns the stored answer for id.
func (n *Navigator) Response(id string) (gift.Answer, bool) {
	for _, r := range n.Responses {
		if r.QuestionID == id {
			return r.Answer, true
		}
	}
	return gift.Answer{}, false
}

// IsAnswered reports whether q has a usable answer: one non-blank choice
// for a multi-select, a non-blank string otherwise.
func (n *Navigator) IsAnswered(q gift.Question) bool {
	a, ok := n.Response(q.ID)
	if !ok {
		return false
	}
	if q.Multiple {
		for _, v := range a.Values {
			if strings.TrimSpace(v) != "" {
				return true
			}
		}
		return false
	}
	return strings.TrimSpace(a.Text()) != ""
}

// CanSubmit is true once every required question of the active volume is
// answered.
func (n *Navigator) CanSubmit() bool {
	for _, q := range n.Filtered() {
		if q.Required && !n.IsAnswered(q) {
			return false
		}
	}
	return true
}

// CanAdvance reports whether Next would move the cursor.
func (n *Navigator) CanAdvance() bool {
	q, ok := n.Current()
	if !ok || n.IsLast() {
		return false
	}
	return !q.Required || n.IsAnswered(q)
}

// Next moves forward one question. It refuses at the end and on a required
// question that has no answer yet.
func (n *Navigator) Next() bool {
	if !n.CanAdvance() {
		return false
	}
	n.CurrentIndex++
	return true
}

// Previous moves back one question. It refuses at the start.
func (n *Navigator) Previous() bool {
	if n.CurrentIndex <= 0 {
		return false
	}
	n.CurrentIndex--
	return true
}

func (n *Navigator) IsFirst() bool { return n.CurrentIndex == 0 }

func (n *Navigator) IsLast() bool {
	return n.CurrentIndex >= len(n.Filtered())-1
}

// SwitchVolume changes the active volume. Going from quick to detailed
// lands on the first detailed-only question when every quick question
// already has a response; every other switch starts over at 0. Switching
// to the active volume leaves the cursor where it is.
func (n *Navigator) SwitchVolume(v gift.Volume) {
	from := n.Volume
	if from == v {
		return
	}
	n.Volume = v
	n.CurrentIndex = 0

	if from == gift.VolumeQuick && v == gift.VolumeDetailed {
		quick := FilteredQuestions(n.Questions, gift.VolumeQuick)
		for _, q := range quick {
			if _, ok := n.Response(q.ID); !ok {
				return
			}
		}
		n.CurrentIndex = len(quick)
	}
}

// CanOfferDetailed is true on the last quick question, where the form
// offers to continue with the detailed set.
func (n *Navigator) CanOfferDetailed() bool {
	return n.Volume == gift.VolumeQuick && n.IsLast()
}

// SubmittedResponses returns every stored response in question order,
// including answers given before a switch back to quick.
func (n *Navigator) SubmittedResponses() []gift.UserResponse {
	out := make([]gift.UserResponse, 0, len(n.Responses))
	for _, q := range n.Questions {
		if a, ok := n.Response(q.ID); ok {
			out = append(out, gift.UserResponse{QuestionID: q.ID, Answer: a})
		}
	}
	return out
}

// Progress reports the 1-based position, the total and the "質問 i / n"
// label.
func (n *Navigator) Progress() (current, total int, label string) {
	total = len(n.Filtered())
	current = n.CurrentIndex + 1
	if current > total {
		current = total
	}
	return current, total, fmt.Sprintf("質問 %d / %d", current, total)
}

// Fraction is the completed share of the active volume.
func (n *Navigator) Fraction() float64 {
	cur, total, _ := n.Progress()
	if total == 0 {
		return 0
	}
	return float64(cur) / float64(total)
}
