package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMockClientUsesSubjectPrefix(t *testing.T) {
	raw, err := MockClient{}.GenerateResearch(context.Background(), GenerateInput{Company: "AAPL - Apple Inc."})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var payload mockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Questions) != 6 || len(payload.Risks) != 6 || len(payload.GrowthDrivers) != 6 {
		t.Fatalf("unexpected sizes: %+v", payload)
	}
	if payload.Questions[0] != "What are AAPL's key competitive advantages in their market?" {
		t.Fatalf("unexpected first question %q", payload.Questions[0])
	}
	if !strings.HasPrefix(payload.BusinessModel, "AAPL operates") {
		t.Fatalf("unexpected business model %q", payload.BusinessModel)
	}
}

func TestMockClientPrefersTicker(t *testing.T) {
	raw, err := MockClient{}.GenerateResearch(context.Background(), GenerateInput{Company: "Toyota Motor", Ticker: "TM"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var payload mockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Questions[1] != "How sustainable is TM's current growth trajectory?" {
		t.Fatalf("unexpected question %q", payload.Questions[1])
	}
}

func TestMockClientHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := MockClient{Delay: time.Minute}.GenerateResearch(ctx, GenerateInput{Company: "MSFT"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
