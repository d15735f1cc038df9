package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

const treeArt = `    ★
   /o\
  /o_o\
 /_o_o_\
/o_o_o_o\
   |_|`

const titleFull = "AWS Identity Gift 2025"

const tagline = "〜あなたに贈る「代名詞」〜"

// renderTree draws the tree with one glyph per archived result beneath it,
// oldest first.
func renderTree(results []gift.DiagnosticResult, cw int) string {
	tree := lipgloss.NewStyle().Foreground(theme.Secondary).Render(treeArt)
	tree = strings.Replace(tree, "★", lipgloss.NewStyle().Foreground(theme.Gold).Render("★"), 1)

	var gifts []string
	for _, r := range results {
		gifts = append(gifts, gift.GiftGlyph(r.ID).Icon)
	}
	row := theme.Hint.Render("まだギフトはありません")
	if len(gifts) > 0 {
		row = strings.Join(gifts, " ")
	}

	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	return center.Render(tree) + "\n" + center.Render(row)
}

func renderTitle(cw int) string {
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	return center.Render(theme.Title.Render(titleFull)) + "\n" +
		center.Render(theme.Subtitle.Render(tagline))
}
