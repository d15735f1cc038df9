package quiz

import "github.com/amixedcolor/aws-identity-gift/internal/gift"

// diagnosedMsg carries the outcome of a submit.
type diagnosedMsg struct {
	Result *gift.DiagnosticResult
	Err    error
}
