package diagnostic

import (
	"fmt"
	"strings"

	"github.com/amixedcolor/aws-identity-gift/internal/catalog"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
)

var modeDescriptions = map[gift.Mode]string{
	gift.ModeTechFit:   "ユーザーの技術スキルと経験に基づいて",
	gift.ModeVibeFit:   "ユーザーの性格とライフスタイルに基づいて",
	gift.ModeAdventure: "ユーザーの憧れと挑戦心に基づいて、意外性のある",
}

// Each instruction block starts with a newline, which leaves a blank line
// under the heading.
var modeInstructions = map[gift.Mode]string{
	gift.ModeTechFit: `
- ユーザーの技術的な強みや経験を活かせるサービスを選んでください
- 実務で使えるサービスを優先してください
- ユーザーのスキルレベルに合ったサービスを選んでください`,
	gift.ModeVibeFit: `
- ユーザーの性格や価値観に合うサービスを選んでください
- ユーザーのライフスタイルや働き方に合うサービスを選んでください
- ユーザーの好みや興味に合うサービスを選んでください`,
	gift.ModeAdventure: `
- ユーザーがまだ触れたことのないサービスを選んでください
- ユーザーの憧れや挑戦心を刺激するサービスを選んでください
- 意外性があり、新しい発見があるサービスを選んでください`,
}

const fence = "```"

const outputFormat = `# 出力形式（JSON）
必ず以下のJSON形式で出力してください。JSONブロック以外の説明文は不要です。

` + fence + `json
{
  "service": {
    "category": "カテゴリ名",
    "serviceName": "サービス名"
  },
  "catchphrase": "ユーザーを表す短いキャッチコピー（15文字以内）",
  "aiLetter": "なぜこのサービスを贈ったのかを説明する温かいメッセージ（200文字程度）",
  "nextActions": [
    "具体的な学習ステップ1",
    "具体的な学習ステップ2",
    "具体的な学習ステップ3"
  ]
}
` + fence + `

重要な注意事項:
1. 必ず上記のJSON形式で出力してください
2. serviceは必ず「選択可能なAWSサービス」リストから正確に1つ選んでください
3. catchphraseは15文字以内で、ユーザーの特徴を表現してください
4. aiLetterは200文字程度で、温かく親しみやすい文体で書いてください
5. nextActionsは3つの具体的なアクションステップを提供してください
6. すべての文章は日本語で書いてください`

// BuildPrompt renders the diagnostic prompt. It is deterministic: the same
// inputs always produce the same bytes.
func BuildPrompt(mode gift.Mode, responses []gift.UserResponse, services []gift.Service) string {
	var b strings.Builder

	b.WriteString("あなたはAWSエンジニアのキャリアアドバイザーです。\n")
	fmt.Fprintf(&b, "以下のユーザー回答を分析し、%s最適なAWSサービスを1つ推薦してください。\n\n", modeDescriptions[mode])

	b.WriteString("# ユーザー回答\n")
	b.WriteString(formatResponses(responses))
	b.WriteString("\n\n")

	b.WriteString("# 選択可能なAWSサービス\n")
	b.WriteString(catalog.FormatForPrompt(services))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "# 診断方針: %s\n", mode)
	b.WriteString(modeInstructions[mode])
	b.WriteString("\n\n")

	b.WriteString(outputFormat)

	return strings.TrimSpace(b.String())
}

func formatResponses(responses []gift.UserResponse) string {
	blocks := make([]string, len(responses))
	for i, r := range responses {
		blocks[i] = fmt.Sprintf("質問ID: %s\n回答: %s", r.QuestionID, r.Answer.String())
	}
	return strings.Join(blocks, "\n\n")
}
