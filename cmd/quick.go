package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/giftcard"
	"github.com/amixedcolor/aws-identity-gift/internal/quiz"
	"github.com/amixedcolor/aws-identity-gift/internal/session"
)

const quickTimeout = 3 * time.Minute

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Answer the questions line by line, without the TUI",
	Long: `Run a diagnostic in plain terminal mode.

Questions are read from stdin one line at a time, so answers can be piped.
Choices are picked by number; separate several numbers with commas.`,
	RunE: runQuick,
}

func init() {
	quickCmd.Flags().String("mode", "", "Mode: tech-fit, vibe-fit or adventure (prompted when empty)")
	quickCmd.Flags().String("volume", string(gift.VolumeQuick), "Volume: quick or detailed")
	quickCmd.Flags().String("out", "", "Write the gift card PNG to this path")
}

func runQuick(cmd *cobra.Command, args []string) error {
	modeVal, _ := cmd.Flags().GetString("mode")
	volumeVal, _ := cmd.Flags().GetString("volume")
	outPath, _ := cmd.Flags().GetString("out")

	volume, err := gift.ParseVolume(volumeVal)
	if err != nil {
		return fmt.Errorf("invalid volume %q: must be quick or detailed", volumeVal)
	}

	bank, err := quiz.LoadBank()
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}

	e, err := openCLIEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	runner, err := e.runner(ctx)
	if err != nil {
		return err
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	mode, err := resolveMode(modeVal, in, out)
	if err != nil {
		return err
	}

	s := session.New(bank, mode, volume)
	fmt.Fprintf(out, "\n%s %s (%s・%s)\n\n", mode.Icon(), mode.Title(), volume.Label(), volume.Duration())
	if err := askAll(s.Nav, in, out); err != nil {
		return err
	}

	fmt.Fprintln(out, "診断中...")
	runCtx, cancel := context.WithTimeout(ctx, quickTimeout)
	defer cancel()
	outcome, err := runner.Run(runCtx, s)
	if err != nil {
		ae := apperr.Normalize(apperr.OpDiagnose, err)
		apperr.Log(e.logger, ae)
		return fmt.Errorf("%s", ae.UserMessage())
	}

	printMarkdown(resultMarkdown(outcome.Result))
	reportOutcome(out, outcome, outPath)
	return nil
}

// resolveMode parses val or asks for a mode by number.
func resolveMode(val string, in *bufio.Scanner, out io.Writer) (gift.Mode, error) {
	if val != "" {
		m, err := gift.ParseMode(val)
		if err != nil {
			return "", fmt.Errorf("invalid mode %q: must be tech-fit, vibe-fit or adventure", val)
		}
		return m, nil
	}

	modes := gift.AllModes()
	for {
		fmt.Fprintln(out, "診断モードを選んでください:")
		for i, m := range modes {
			fmt.Fprintf(out, "  %d) %s %s - %s\n", i+1, m.Icon(), m.Title(), m.Subtitle())
		}
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			return "", io.ErrUnexpectedEOF
		}
		if n, err := strconv.Atoi(strings.TrimSpace(in.Text())); err == nil && n >= 1 && n <= len(modes) {
			return modes[n-1], nil
		}
		fmt.Fprintln(out, "番号で選んでください")
	}
}

// askAll walks the navigator until every required question is answered.
func askAll(nav *quiz.Navigator, in *bufio.Scanner, out io.Writer) error {
	for {
		q, ok := nav.Current()
		if !ok {
			return nil
		}
		current, total, _ := nav.Progress()
		fmt.Fprintf(out, "── 質問 %d/%d (%.0f%%) ──\n", current, total, nav.Fraction()*100)
		marker := ""
		if q.Required {
			marker = " *"
		}
		fmt.Fprintln(out, q.Text+marker)

		answer, err := askOne(q, in, out)
		if err != nil {
			return err
		}
		if answer.String() != "" {
			nav.Answer(q.ID, answer)
		}
		if q.Required && !nav.IsAnswered(q) {
			fmt.Fprintln(out, "この質問は回答が必要です")
			continue
		}
		fmt.Fprintln(out)
		if nav.IsLast() || !nav.Next() {
			return nil
		}
	}
}

func askOne(q gift.Question, in *bufio.Scanner, out io.Writer) (gift.Answer, error) {
	if q.Type == gift.MultipleChoice {
		for i, o := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, o)
		}
		if q.Multiple {
			fmt.Fprintln(out, "(複数選択可: 1,3 のようにカンマ区切り)")
		}
	}
	fmt.Fprint(out, "> ")
	if !in.Scan() {
		return gift.Answer{}, io.ErrUnexpectedEOF
	}
	line := strings.TrimSpace(in.Text())
	if q.Type != gift.MultipleChoice {
		return gift.TextAnswer(line), nil
	}
	return parseChoices(q, line), nil
}

// parseChoices maps "1,3" onto options. Out-of-range numbers are dropped;
// a single-choice question keeps the first valid pick.
func parseChoices(q gift.Question, line string) gift.Answer {
	var picked []string
	for _, f := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '、' }) {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(q.Options) {
			continue
		}
		opt := q.Options[n-1]
		if !slices.Contains(picked, opt) {
			picked = append(picked, opt)
		}
	}
	if len(picked) == 0 {
		return gift.TextAnswer("")
	}
	if !q.Multiple {
		return gift.TextAnswer(picked[0])
	}
	return gift.ChoiceAnswer(picked...)
}

// reportOutcome prints save and gift card notices, writing the card when
// outPath is set.
func reportOutcome(out io.Writer, o session.Outcome, outPath string) {
	if o.SaveErr != nil {
		fmt.Fprintln(out, "⚠️ "+apperr.UserMessage(o.SaveErr))
		fmt.Fprintln(out, "結果は表示されていますが、保存されていません")
	} else {
		fmt.Fprintln(out, "✅ この結果は保存されました (id: "+o.Result.ID+")")
	}

	switch {
	case o.CardSkipped:
	case o.GiftCardErr != nil:
		fmt.Fprintln(out, "ギフトカード生成に失敗しました: "+apperr.UserMessage(o.GiftCardErr))
	case o.Image != "":
		if outPath == "" {
			outPath = giftcard.FileName(o.Result)
		}
		if err := giftcard.WritePNG(outPath, o.Image); err != nil {
			fmt.Fprintln(os.Stderr, "write gift card:", err)
			return
		}
		fmt.Fprintln(out, "🎁 ギフトカード: "+outPath)
	}
}
