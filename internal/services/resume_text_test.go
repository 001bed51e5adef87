package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Extract_WhenNoResumeURL_ShouldReturnEmpty(t *testing.T) {

	service := NewResumeTextService()

	assert.Equal(t, "", service.Extract(context.Background(), ""))
}

func Test_Extract_DownloadsTxtResumeAndCachesIt(t *testing.T) {

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("Go developer,  5 years of experience"))
	}))
	defer server.Close()

	service := NewResumeTextService()
	resumeURL := server.URL + "/cv.txt"

	text := service.Extract(context.Background(), resumeURL)
	assert.Equal(t, "Go developer, 5 years of experience", text)

	service.Extract(context.Background(), resumeURL)
	assert.Equal(t, int32(1), requests.Load())
}

func Test_Extract_WhenExtensionUnknown_ShouldFallBackToPlainText(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain text resume"))
	}))
	defer server.Close()

	service := NewResumeTextService()

	text := service.Extract(context.Background(), server.URL+"/resume")
	assert.Equal(t, "plain text resume", text)
}

func Test_Extract_WhenDownloadFails_ShouldReturnEmpty(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	service := NewResumeTextService()

	assert.Equal(t, "", service.Extract(context.Background(), server.URL+"/cv.pdf"))
}
