package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-agent/internal/config"
	"github.com/sevigo/review-agent/internal/core"
)

const webhookSecret = "test-secret"

type fakeDispatcher struct {
	events []*core.GitHubEvent
	err    error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, event *core.GitHubEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeDispatcher) Stop() {}

func newTestHandler(dispatcher core.JobDispatcher) *WebhookHandler {
	cfg := &config.Config{}
	cfg.GitHub.WebhookSecret = webhookSecret
	return NewWebhookHandler(cfg, dispatcher, slog.New(slog.DiscardHandler))
}

func signedRequest(t *testing.T, eventType, payload string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/github", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)

	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write([]byte(payload))
	req.Header.Set("X-Hub-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))
	return req
}

const openedPRPayload = `{
	"action": "opened",
	"number": 42,
	"pull_request": {
		"number": 42,
		"title": "Add caching layer",
		"head": {"sha": "abc123"}
	},
	"repository": {
		"name": "review-agent",
		"full_name": "sevigo/review-agent",
		"owner": {"login": "sevigo"}
	},
	"sender": {"login": "octocat"},
	"installation": {"id": 1001}
}`

func TestWebhookHandlerDispatchesPullRequest(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	h := newTestHandler(dispatcher)

	rec := httptest.NewRecorder()
	h.Handle(rec, signedRequest(t, "pull_request", openedPRPayload))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, "sevigo/review-agent", dispatcher.events[0].RepoFullName)
	assert.Equal(t, 42, dispatcher.events[0].PRNumber)
	assert.Equal(t, int64(1001), dispatcher.events[0].InstallationID)
}

func TestWebhookHandlerRejectsBadSignature(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	h := newTestHandler(dispatcher)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/github", strings.NewReader(openedPRPayload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "pull_request")
	req.Header.Set("X-Hub-Signature-256", "sha256=deadbeef")

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, dispatcher.events)
}

func TestWebhookHandlerIgnoresClosedAction(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	h := newTestHandler(dispatcher)

	payload := strings.Replace(openedPRPayload, `"action": "opened"`, `"action": "closed"`, 1)
	rec := httptest.NewRecorder()
	h.Handle(rec, signedRequest(t, "pull_request", payload))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ignored")
	assert.Empty(t, dispatcher.events)
}

func TestWebhookHandlerDispatchesReviewCommand(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	h := newTestHandler(dispatcher)

	payload := `{
		"action": "created",
		"issue": {
			"number": 42,
			"title": "Add caching layer",
			"pull_request": {"url": "https://api.github.com/repos/sevigo/review-agent/pulls/42"}
		},
		"comment": {
			"body": "/review",
			"user": {"login": "octocat"}
		},
		"repository": {
			"name": "review-agent",
			"full_name": "sevigo/review-agent",
			"owner": {"login": "sevigo"}
		},
		"installation": {"id": 1001}
	}`

	rec := httptest.NewRecorder()
	h.Handle(rec, signedRequest(t, "issue_comment", payload))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, "octocat", dispatcher.events[0].Sender)
}

func TestWebhookHandlerIgnoresOrdinaryComment(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	h := newTestHandler(dispatcher)

	payload := `{
		"action": "created",
		"issue": {"number": 42, "pull_request": {"url": "u"}},
		"comment": {"body": "nice work!", "user": {"login": "octocat"}},
		"repository": {"name": "review-agent", "full_name": "sevigo/review-agent", "owner": {"login": "sevigo"}},
		"installation": {"id": 1001}
	}`

	rec := httptest.NewRecorder()
	h.Handle(rec, signedRequest(t, "issue_comment", payload))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, dispatcher.events)
}
