package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abhisek/triviaz/internal/store"
)

// loggingProvider records every call as an llm_events row.
type loggingProvider struct {
	inner  Provider
	vendor string
	events store.EventRepo
	warn   io.Writer
}

// WithLogging wraps p so each Generate call is appended to the event store
// under vendor. Store failures are reported on stderr and never fail the call.
func WithLogging(p Provider, vendor string, events store.EventRepo) Provider {
	return &loggingProvider{inner: p, vendor: vendor, events: events, warn: os.Stderr}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(ctx, req, resp, err, time.Since(start))

	// Logged even when ctx is already done.
	if logErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); logErr != nil {
		fmt.Fprintf(l.warn, "warning: failed to log llm event: %v\n", logErr)
	}
	return resp, err
}

// event describes one finished call. The model reported by the response
// wins over the configured one.
func (l *loggingProvider) event(ctx context.Context, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.vendor,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: renderRequest(req),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	if resp == nil {
		return ev
	}
	if resp.Model != "" {
		ev.Model = resp.Model
	}
	ev.InputTokens, ev.OutputTokens = resp.Usage.InputTokens, resp.Usage.OutputTokens
	ev.ResponseBody = string(resp.Content)
	return ev
}

func (l *loggingProvider) ModelID() string { return l.inner.ModelID() }

// renderRequest flattens a request into the text shown by `llm view`.
func renderRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
