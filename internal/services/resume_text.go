package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/eladgl/jobscout/internal/resume"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

// ResumeTextService downloads a stored resume and extracts its plain text.
// Results are cached per URL so a multi-keyword run extracts once per user.
// Unsupported formats and download failures yield an empty string, which
// downstream treats as "no resume on file".
type ResumeTextService struct {
	httpClient *http.Client
	cache      *gocache.Cache
}

func NewResumeTextService() *ResumeTextService {
	return &ResumeTextService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      gocache.New(30*time.Minute, time.Hour),
	}
}

func (s *ResumeTextService) Extract(ctx context.Context, resumeURL string) string {

	if resumeURL == "" {
		return ""
	}

	if cached, found := s.cache.Get(resumeURL); found {
		return cached.(string)
	}

	text := s.downloadAndExtract(ctx, resumeURL)
	s.cache.Set(resumeURL, text, gocache.DefaultExpiration)
	return text
}

func (s *ResumeTextService) downloadAndExtract(ctx context.Context, resumeURL string) string {

	data, ext, err := s.download(ctx, resumeURL)
	if err != nil {
		log.Warnf("failed to download resume %v: %v", resumeURL, err)
		return ""
	}

	text, err := resume.ExtractText(ext, data)
	if err != nil {
		log.Warnf("failed to extract resume text from %v: %v", resumeURL, err)
		return ""
	}
	return text
}

func (s *ResumeTextService) download(ctx context.Context, resumeURL string) (data []byte, ext string, err error) {

	parsed, err := url.Parse(resumeURL)
	if err != nil {
		return nil, "", err
	}

	ext = strings.ToLower(path.Ext(parsed.Path))
	if ext == "" {
		ext = ".txt"
	}

	req, err := http.NewRequestWithContext(ctx, "GET", resumeURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("request failed with status %v", resp.StatusCode)
	}

	data, err = io.ReadAll(resp.Body)
	return data, ext, err
}
