package diagnostic

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amixedcolor/aws-identity-gift/internal/gift"
)

func sampleResponses() []gift.UserResponse {
	return []gift.UserResponse{
		{QuestionID: "tf-q1", Answer: gift.TextAnswer("バックエンド")},
		{QuestionID: "tf-q12", Answer: gift.ChoiceAnswer("Go", "Python")},
	}
}

func sampleServices() []gift.Service {
	return []gift.Service{
		{Category: "コンピューティング", ServiceName: "Amazon EC2"},
		{Category: "サーバーレス", ServiceName: "AWS Lambda"},
	}
}

func TestBuildPrompt_TechFitGolden(t *testing.T) {
	want := "あなたはAWSエンジニアのキャリアアドバイザーです。\n" +
		"以下のユーザー回答を分析し、ユーザーの技術スキルと経験に基づいて最適なAWSサービスを1つ推薦してください。\n" +
		"\n" +
		"# ユーザー回答\n" +
		"質問ID: tf-q1\n回答: バックエンド\n" +
		"\n" +
		"質問ID: tf-q12\n回答: Go, Python\n" +
		"\n" +
		"# 選択可能なAWSサービス\n" +
		"- コンピューティング: Amazon EC2\n" +
		"- サーバーレス: AWS Lambda\n" +
		"\n" +
		"# 診断方針: tech-fit\n" +
		"\n" +
		"- ユーザーの技術的な強みや経験を活かせるサービスを選んでください\n" +
		"- 実務で使えるサービスを優先してください\n" +
		"- ユーザーのスキルレベルに合ったサービスを選んでください\n" +
		"\n" +
		"# 出力形式（JSON）\n" +
		"必ず以下のJSON形式で出力してください。JSONブロック以外の説明文は不要です。\n" +
		"\n" +
		"```json\n" +
		"{\n" +
		"  \"service\": {\n" +
		"    \"category\": \"カテゴリ名\",\n" +
		"    \"serviceName\": \"サービス名\"\n" +
		"  },\n" +
		"  \"catchphrase\": \"ユーザーを表す短いキャッチコピー（15文字以内）\",\n" +
		"  \"aiLetter\": \"なぜこのサービスを贈ったのかを説明する温かいメッセージ（200文字程度）\",\n" +
		"  \"nextActions\": [\n" +
		"    \"具体的な学習ステップ1\",\n" +
		"    \"具体的な学習ステップ2\",\n" +
		"    \"具体的な学習ステップ3\"\n" +
		"  ]\n" +
		"}\n" +
		"```\n" +
		"\n" +
		"重要な注意事項:\n" +
		"1. 必ず上記のJSON形式で出力してください\n" +
		"2. serviceは必ず「選択可能なAWSサービス」リストから正確に1つ選んでください\n" +
		"3. catchphraseは15文字以内で、ユーザーの特徴を表現してください\n" +
		"4. aiLetterは200文字程度で、温かく親しみやすい文体で書いてください\n" +
		"5. nextActionsは3つの具体的なアクションステップを提供してください\n" +
		"6. すべての文章は日本語で書いてください"

	got := BuildPrompt(gift.ModeTechFit, sampleResponses(), sampleServices())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("prompt mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPrompt_ModeSections(t *testing.T) {
	tests := []struct {
		mode gift.Mode
		desc string
		rule string
	}{
		{gift.ModeVibeFit, "ユーザーの性格とライフスタイルに基づいて最適な", "- ユーザーの好みや興味に合うサービスを選んでください"},
		{gift.ModeAdventure, "ユーザーの憧れと挑戦心に基づいて、意外性のある最適な", "- ユーザーがまだ触れたことのないサービスを選んでください"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := BuildPrompt(tt.mode, sampleResponses(), sampleServices())
			if !strings.Contains(got, tt.desc) {
				t.Errorf("missing mode description %q", tt.desc)
			}
			if !strings.Contains(got, "# 診断方針: "+string(tt.mode)+"\n\n- ") {
				t.Error("instruction block should follow a blank line")
			}
			if !strings.Contains(got, tt.rule) {
				t.Errorf("missing rule %q", tt.rule)
			}
		})
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	a := BuildPrompt(gift.ModeAdventure, sampleResponses(), sampleServices())
	b := BuildPrompt(gift.ModeAdventure, sampleResponses(), sampleServices())
	if a != b {
		t.Fatal("same input must give the same prompt")
	}
	if strings.HasPrefix(a, "\n") || strings.HasSuffix(a, "\n") {
		t.Fatal("prompt must be trimmed")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"fenced", "はい\n```json\n{\"a\":1}\n```\n以上", `{"a":1}`, false},
		{"fenced wins over braces", "{\"x\":0}\n```json\n{\"a\":1}\n```", `{"a":1}`, false},
		{"bare object", "結果: {\"a\":{\"b\":2}} です", `{"a":{"b":2}}`, false},
		{"none", "申し訳ありません", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
