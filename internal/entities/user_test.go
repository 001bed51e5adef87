package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewUser_NormalizesEmailAndJoinsLists(t *testing.T) {

	user := NewUser("Dev@Example.com", "Haifa", "token",
		[]string{"golang", "devops"}, []string{"senior"}, "https://example.com/cv.pdf")

	assert.Equal(t, "dev@example.com", user.Email)
	assert.Equal(t, "golang,devops", user.Keywords)
	assert.Equal(t, []string{"golang", "devops"}, user.KeywordsAsArray())
	assert.Equal(t, []string{"senior"}, user.ExperienceLevelsAsArray())
}

func Test_KeywordsAsArray_SkipsEmptyEntries(t *testing.T) {

	user := User{Keywords: "golang, ,devops,"}

	assert.Equal(t, []string{"golang", "devops"}, user.KeywordsAsArray())
}

func Test_IsEligibleForIngestion(t *testing.T) {

	eligible := User{SessionToken: "token", Keywords: "golang"}
	noToken := User{Keywords: "golang"}
	noKeywords := User{SessionToken: "token"}
	blankKeywords := User{SessionToken: "token", Keywords: " , "}

	assert.True(t, eligible.IsEligibleForIngestion())
	assert.False(t, noToken.IsEligibleForIngestion())
	assert.False(t, noKeywords.IsEligibleForIngestion())
	assert.False(t, blankKeywords.IsEligibleForIngestion())
}

func Test_ToJobStatus(t *testing.T) {

	status, err := ToJobStatus("applied")
	assert.NoError(t, err)
	assert.Equal(t, StatusApplied, status)

	_, err = ToJobStatus("daydreaming")
	assert.Error(t, err)
}
