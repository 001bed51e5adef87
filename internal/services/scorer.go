package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/eladgl/jobscout/internal/logger"
	log "github.com/sirupsen/logrus"
)

type aiClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// MatchScorer rates resume-to-description fit on a 0..100 scale via a
// text-generation backend. Scoring is best-effort: any failure degrades to 0
// and never fails the ingestion batch.
type MatchScorer struct {
	aiClient aiClient
}

func NewMatchScorer(aiClient aiClient) *MatchScorer {
	return &MatchScorer{aiClient: aiClient}
}

func (s *MatchScorer) Score(ctx context.Context, jobDescription, resumeText string) int {

	response, err := s.aiClient.Generate(ctx, s.matchScoreRequest(jobDescription, resumeText))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
			Errorf("failed to generate match score: %v", err)
		return 0
	}

	return parseScore(response)
}

func (s *MatchScorer) matchScoreRequest(jobDescription, resumeText string) (request string) {

	request = "You evaluate how well a resume matches a job description. " +
		"Analyze both texts and answer with a match score from 0 to 100, " +
		"where 0 means no match and 100 means perfect match. " +
		"You MUST return only a number between 0 and 100."
	request += " Resume text: " + resumeText
	request += " Job description: " + jobDescription
	return request
}

var scoreRe = regexp.MustCompile(`\d+`)

func parseScore(response string) int {

	match := scoreRe.FindString(strings.TrimSpace(response))
	if match == "" {
		log.Warnf("unexpected match score response %q", response)
		return 0
	}

	score, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}

	if score > 100 {
		return 100
	}
	return score
}
