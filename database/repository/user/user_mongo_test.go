package userRepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchRegexQuotesMetacharacters(t *testing.T) {
	re := searchRegex("a.b+(c")
	assert.Equal(t, `a\.b\+\(c`, re["$regex"])
	assert.Equal(t, "i", re["$options"])

	re = searchRegex("plain")
	assert.Equal(t, "plain", re["$regex"])
}
