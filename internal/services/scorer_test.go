package services

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAiClient struct {
	mock.Mock
}

func (m *mockAiClient) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func Test_Score_ParsesBareNumber(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("Generate", mock.Anything, mock.Anything).Return("87", nil)

	scorer := NewMatchScorer(ai)

	assert.Equal(t, 87, scorer.Score(context.Background(), "description", "resume"))
}

func Test_Score_ParsesNumberWithSurroundingText(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("Generate", mock.Anything, mock.Anything).Return("Score: 92\n", nil)

	scorer := NewMatchScorer(ai)

	assert.Equal(t, 92, scorer.Score(context.Background(), "description", "resume"))
}

func Test_Score_ClampsAboveHundred(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("Generate", mock.Anything, mock.Anything).Return("150", nil)

	scorer := NewMatchScorer(ai)

	assert.Equal(t, 100, scorer.Score(context.Background(), "description", "resume"))
}

func Test_Score_WhenResponseHasNoNumber_ShouldReturnZero(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("Generate", mock.Anything, mock.Anything).Return("I cannot evaluate this.", nil)

	scorer := NewMatchScorer(ai)

	assert.Equal(t, 0, scorer.Score(context.Background(), "description", "resume"))
}

func Test_Score_WhenGenerationFails_ShouldReturnZero(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

	scorer := NewMatchScorer(ai)

	assert.Equal(t, 0, scorer.Score(context.Background(), "description", "resume"))
}

func Test_Score_PromptContainsResumeAndDescription(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "my resume text") && strings.Contains(prompt, "the job description")
	})).Return("50", nil)

	scorer := NewMatchScorer(ai)
	scorer.Score(context.Background(), "the job description", "my resume text")

	ai.AssertExpectations(t)
}
