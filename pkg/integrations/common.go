package integrations

import (
	"net/http"
	"time"

	"github.com/drupaltools/deprecaudit/pkg/errors"
)

// Default request settings.
const (
	DefaultUserAgent    = "drupaltools-audit-script/1.0 (+https://drupaltools.github.io)"
	DefaultTimeout      = 12 * time.Second
	DefaultMaxBodyBytes = 5 << 20
)

var (
	// ErrNetwork is returned for transport failures (connection refused, DNS, TLS).
	ErrNetwork = errors.New(errors.ErrCodeNetwork, "network error")

	// ErrTimeout is returned when a request exceeds its deadline.
	ErrTimeout = errors.New(errors.ErrCodeTimeout, "request timed out")
)

// NewHTTPClient creates an HTTP client with the given timeout. Redirects are
// followed with the net/http default policy.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// IsSuccess reports whether a final status code counts as reachable (200-399).
func IsSuccess(code int) bool {
	return code >= 200 && code < 400
}
