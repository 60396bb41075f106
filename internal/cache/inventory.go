package cache

import (
	"fmt"
	"time"
)

// TokenBlacklistTTL matches the token lifetime: a revocation entry only has
// to outlive the token it revokes.
const TokenBlacklistTTL = 7 * 24 * time.Hour

const blacklistPrefix = "blacklist:%s"

// BlacklistKey returns the revocation key for a token's jti claim.
func BlacklistKey(jti string) string {
	return fmt.Sprintf(blacklistPrefix, jti)
}
