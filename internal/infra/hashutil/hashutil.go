package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// JSONETag returns a strong ETag for the JSON encoding of value, or "" when
// encoding fails.
func JSONETag(logger *zap.Logger, label string, value any) string {
	return hashWithLogger(logger, label, func() (string, error) {
		data, err := json.Marshal(value)
		if err != nil {
			return "", err
		}
		sum := sha256.Sum256(data)
		return `"` + hex.EncodeToString(sum[:16]) + `"`, nil
	})
}

func hashWithLogger(logger *zap.Logger, label string, fn func() (string, error)) string {
	etag, err := fn()
	if err != nil {
		if logger != nil {
			logger.Warn(fmt.Sprintf("%s hash failed", label), zap.Error(err))
		}
		return ""
	}
	return etag
}
