// internal/insight/canonical.go
package insight

import (
	"strings"

	"knowyourcompany/internal/common/errors"
)

// Canonicalize derives the canonical identity key for a raw company
// name: surrounding whitespace stripped, case folded. The key is the
// sole identity for cache, store and idempotency, so this must stay
// deterministic and idempotent.
func Canonicalize(rawName string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(rawName))
	if key == "" {
		return "", errors.NewInvalidInputError("company name is empty or whitespace-only")
	}
	return key, nil
}
