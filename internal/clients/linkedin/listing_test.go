package linkedin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ListingID_DerivesIdentifierFromDetailURL(t *testing.T) {

	cases := map[string]string{
		"https://www.linkedin.com/jobs/view/senior-engineer-at-acme-3912004521":           "3912004521",
		"https://www.linkedin.com/jobs/view/senior-engineer-at-acme-3912004521?refId=abc": "3912004521",
		"https://www.linkedin.com/jobs/view/4335742219":                                   "4335742219",
	}

	for url, expected := range cases {
		id, ok := ListingID(url)
		assert.True(t, ok, "url: %v", url)
		assert.Equal(t, expected, id)
	}
}

func Test_ListingID_FailsClosedOnUnexpectedShape(t *testing.T) {

	cases := []string{
		"https://www.linkedin.com/jobs/search?keywords=go",
		"https://www.linkedin.com/jobs/view/engineer-at-acme",
		"https://www.linkedin.com/jobs/view/123",
		"",
	}

	for _, url := range cases {
		_, ok := ListingID(url)
		assert.False(t, ok, "url: %v", url)
	}
}
