package llm

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/triviaz/internal/store"
)

// captureRepo records LLM events; other EventRepo methods are unused here.
type captureRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (c *captureRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	c.events = append(c.events, data)
	return c.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &captureRepo{}
	mock := NewMockProvider(JSONResponse(map[string]any{"question": "Who painted Guernica?", "points": 1}))
	p := WithLogging(mock, "mock", repo)

	ctx := WithPurpose(context.Background(), PurposeTriviaBatch)
	if _, err := p.Generate(ctx, Request{System: "trivia writer", Messages: UserMessage("one please"), Schema: testSchema()}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Provider != "mock" || ev.Model != "mock" || ev.Purpose != PurposeTriviaBatch || !ev.Success {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if !strings.Contains(ev.RequestBody, "[system]\ntrivia writer") || !strings.Contains(ev.RequestBody, "[schema: test-question]") {
		t.Fatalf("request body: %q", ev.RequestBody)
	}
	if !strings.Contains(ev.ResponseBody, "Guernica") || ev.InputTokens == 0 {
		t.Fatalf("response not captured: %+v", ev)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := &captureRepo{}
	p := WithLogging(NewMockProvider(MockResponse{Err: errors.New("boom")}), "mock", repo)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	ev := repo.events[0]
	if ev.Success || ev.ErrorMessage != "boom" || ev.Purpose != PurposeUnknown {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestLogging_StoreFailureOnlyWarns(t *testing.T) {
	repo := &captureRepo{err: errors.New("disk full")}
	var warn bytes.Buffer
	p := WithLogging(NewMockProvider(JSONResponse(map[string]any{})), "mock", repo).(*loggingProvider)
	p.warn = &warn

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("store failure leaked: %v", err)
	}
	if !strings.Contains(warn.String(), "warning: failed to log llm event: disk full") {
		t.Fatalf("warning = %q", warn.String())
	}
}
