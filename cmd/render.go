package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/components"
)

// resultMarkdown lays a result out the way the result page does.
func resultMarkdown(r gift.DiagnosticResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# 🎁 あなたへのギフト\n\n")
	fmt.Fprintf(&b, "*%s*\n\n", r.Service.Category)
	fmt.Fprintf(&b, "## %s\n\n", r.Service.ServiceName)
	fmt.Fprintf(&b, "> %s\n\n", r.Catchphrase)
	fmt.Fprintf(&b, "### 💌 あなたへのメッセージ\n\n%s\n\n", r.AILetter)
	fmt.Fprintf(&b, "### 🚀 次のステップ\n\n")
	for i, a := range r.NextActions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, a)
	}
	fmt.Fprintf(&b, "\n---\n\n%s %s ・ %s\n\n", r.Mode.Icon(), r.Mode.Title(), gift.FormatTimestamp(r.Timestamp))
	fmt.Fprintf(&b, "*%s*\n\n", components.Disclaimer)
	fmt.Fprintf(&b, "Xでシェア: %s\n", gift.ShareURL(gift.ShareText(r), ""))
	return b.String()
}

// notFoundMarkdown is printed for an id that is not archived.
func notFoundMarkdown(id string) string {
	return fmt.Sprintf("# %s\n\nこの結果は削除されたか、存在しません。\n\n`%s`\n\n`identitygift archive list` で保存された結果を確認できます。\n",
		apperr.MsgResultNotFound, id)
}

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		if out, err := renderer.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
