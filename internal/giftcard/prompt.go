package giftcard

import (
	"fmt"

	"github.com/amixedcolor/aws-identity-gift/internal/gift"
)

var categoryVisuals = map[string]string{
	"コンピューティング":                "glowing processors, circuit patterns, digital energy flows",
	"ストレージ":                    "crystalline data structures, floating storage cubes, light streams",
	"データベース":                   "interconnected nodes, data constellation, flowing information streams",
	"ネットワーキングとコンテンツ配信":         "network mesh, global connections, light beams connecting points",
	"セキュリティ、アイデンティティ、コンプライアンス": "protective shields, secure locks, guardian symbols",
	"機械学習":                     "neural network patterns, AI brain visualization, learning pathways",
	"分析":                       "data visualization, charts transforming into light, insight beams",
	"アプリケーション統合":               "puzzle pieces connecting, flowing bridges, unified systems",
	"マネジメントとガバナンス":             "control panels, orchestration flows, management dashboards",
	"開発者ツール":                   "code streams, development pipelines, creative tools",
	"コンテナ":                     "modular containers, orchestrated boxes, scalable units",
	"サーバーレス":                   "abstract cloud formations, event-driven flows, serverless magic",
}

const defaultVisuals = "abstract cloud technology, digital innovation"

// Visuals returns the imagery hint for a catalog category.
func Visuals(category string) string {
	if v, ok := categoryVisuals[category]; ok {
		return v
	}
	return defaultVisuals
}

// BuildImagePrompt describes a text-free card illustration for the result.
func BuildImagePrompt(r gift.DiagnosticResult) string {
	name, phrase := r.Service.ServiceName, r.Catchphrase
	return fmt.Sprintf(`A beautiful, abstract digital art illustration representing %s AWS service.
The image should capture the essence of "%s" through visual metaphors and artistic interpretation.
The image should feature %s.
Style: Modern, sleek, professional tech aesthetic with Christmas holiday warmth that reflects the personality of "%s".
Color palette: Deep reds, forest greens, and golden accents creating a festive yet professional atmosphere.
Include subtle snowflakes and warm lighting effects.
The overall mood and composition should evoke the feeling of "%s".
The image should feel like a premium gift card design.
IMPORTANT: Do NOT include any text, letters, words, or numbers in the image. Pure visual art only.
No logos, no labels, no watermarks.`, name, phrase, Visuals(r.Service.Category), phrase, phrase)
}
