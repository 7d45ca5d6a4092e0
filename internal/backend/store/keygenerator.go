package store

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Key derives the cache key of a contract text
func Key(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}
