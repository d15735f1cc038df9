package diagnostic

import (
	"errors"
	"regexp"
	"strings"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
)

var (
	fencedJSON = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")
	bareObject = regexp.MustCompile(`\{[\s\S]*\}`)
)

// ExtractJSON pulls the JSON object out of a model reply. A fenced json
// block wins; otherwise the span from the first '{' to the last '}' is used.
func ExtractJSON(text string) (string, error) {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return m[1], nil
	}
	if m := bareObject.FindString(text); m != "" {
		return m, nil
	}
	return "", apperr.New(apperr.ResponseParseFailure, apperr.OpDiagnose,
		errors.New("no JSON object in model reply")).
		WithDetails(map[string]any{"reply": truncate(strings.TrimSpace(text), 200)})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
