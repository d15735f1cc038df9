package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

// ChoiceList selects one option, or several when Multiple is set.
// Space toggles in multi-select mode; Enter sets Submitted.
type ChoiceList struct {
	Options   []string
	Multiple  bool
	Cursor    int
	Chosen    []bool
	Submitted bool
}

// NewChoiceList creates a list with the options of current pre-selected.
func NewChoiceList(options []string, multiple bool, current gift.Answer) ChoiceList {
	c := ChoiceList{
		Options:  options,
		Multiple: multiple,
		Chosen:   make([]bool, len(options)),
	}
	for i, opt := range options {
		if current.Contains(opt) {
			c.Chosen[i] = true
			if !multiple {
				c.Cursor = i
			}
		}
	}
	return c
}

// Init returns nil.
func (c ChoiceList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	c.Submitted = false
	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Multiple && c.Cursor < len(c.Chosen) {
			c.Chosen[c.Cursor] = !c.Chosen[c.Cursor]
		}
	case "enter":
		if !c.Multiple {
			for i := range c.Chosen {
				c.Chosen[i] = i == c.Cursor
			}
		}
		c.Submitted = true
	}

	return c, nil
}

// Answer returns the current selection. A single-select list with
// nothing chosen answers with an empty string.
func (c ChoiceList) Answer() gift.Answer {
	if !c.Multiple {
		for i, on := range c.Chosen {
			if on {
				return gift.TextAnswer(c.Options[i])
			}
		}
		return gift.TextAnswer("")
	}
	var picked []string
	for i, on := range c.Chosen {
		if on {
			picked = append(picked, c.Options[i])
		}
	}
	return gift.ChoiceAnswer(picked...)
}

// View renders the options.
func (c ChoiceList) View() string {
	var s string
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		mark := "( )"
		if c.Multiple {
			mark = "[ ]"
		}
		if c.Chosen[i] {
			if c.Multiple {
				mark = "[✓]"
			} else {
				mark = "(●)"
			}
		}
		line := fmt.Sprintf("%s%s %s", prefix, mark, opt)

		switch {
		case i == c.Cursor:
			s += theme.Selected.Render(line) + "\n"
		case c.Chosen[i]:
			s += lipgloss.NewStyle().Foreground(theme.Success).Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
