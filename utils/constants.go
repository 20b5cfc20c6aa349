// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// AuthTokenTTL is the lifetime of issued auth tokens.
const AuthTokenTTL = 72 * time.Hour

// DefaultPageSize is the page size used when the caller does not specify one.
const DefaultPageSize = 10
