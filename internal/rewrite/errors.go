package rewrite

import "fmt"

// Kind classifies rewrite failures into the cases callers must distinguish.
// Each kind maps to one stable user-facing message; the HTTP layer decides
// status codes. None are retried automatically.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindInvalidCredential
	KindInsufficientQuota
	KindRateLimited
	KindUpstream
)

var kindMessages = map[Kind]string{
	KindInvalidInput:      "text is required",
	KindInvalidCredential: "the rewriting service rejected the configured credentials",
	KindInsufficientQuota: "the rewriting service quota is exhausted",
	KindRateLimited:       "too many rewriting requests, slow down and retry",
	KindUpstream:          "the rewriting service is temporarily unavailable",
}

type Error struct {
	Kind  Kind
	cause error
}

func NewError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func (e *Error) Error() string {
	if msg, ok := kindMessages[e.Kind]; ok {
		return msg
	}
	return kindMessages[KindUpstream]
}

func (e *Error) Unwrap() error { return e.cause }

// Detail is the underlying provider error for logs; never shown to users.
func (e *Error) Detail() string {
	if e.cause == nil {
		return e.Error()
	}
	return fmt.Sprintf("%s: %v", e.Error(), e.cause)
}
