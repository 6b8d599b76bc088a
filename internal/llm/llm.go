package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"research-backend/research/model"
)

// Client abstracts research generators. Implementations return the raw
// payload; callers normalize it with the assembler.
type Client interface {
	GenerateResearch(ctx context.Context, input GenerateInput) (json.RawMessage, error)
}

// GenerateInput captures what the caller knows about the company. Only
// Company is required.
type GenerateInput struct {
	Company string
	Ticker  string
	Sector  string
	Country string
}

// MockClient returns canned research after an optional simulated delay.
type MockClient struct {
	Delay time.Duration
}

type mockPayload struct {
	Questions     []string `json:"questions"`
	BusinessModel string   `json:"businessModel"`
	Risks         []string `json:"risks"`
	GrowthDrivers []string `json:"growthDrivers"`
}

var mockRisks = []string{
	"Increased competition from emerging market players",
	"Regulatory changes in key operating jurisdictions",
	"Supply chain disruptions and cost inflation",
	"Cybersecurity threats and data privacy concerns",
	"Economic recession impacting consumer spending",
	"Currency fluctuation risks in international markets",
}

var mockGrowthDrivers = []string{
	"Expansion into emerging markets and new geographies",
	"Product innovation and R&D investments",
	"Strategic acquisitions and partnerships",
	"Digital transformation and automation initiatives",
	"Growing market demand in core segments",
	"Operational efficiency improvements and cost optimization",
}

// GenerateResearch waits for Delay (or ctx) and returns the mock payload.
func (m MockClient) GenerateResearch(ctx context.Context, input GenerateInput) (json.RawMessage, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Ticker)
	if name == "" {
		name = model.SubjectPrefix(strings.TrimSpace(input.Company))
	}
	payload := mockPayload{
		Questions: []string{
			fmt.Sprintf("What are %s's key competitive advantages in their market?", name),
			fmt.Sprintf("How sustainable is %s's current growth trajectory?", name),
			fmt.Sprintf("What are the main regulatory risks facing %s?", name),
			fmt.Sprintf("How does %s's valuation compare to industry peers?", name),
			fmt.Sprintf("What impact could economic downturns have on %s's business model?", name),
			fmt.Sprintf("What are %s's key ESG considerations and risks?", name),
		},
		BusinessModel: name + " operates a diversified business model with multiple revenue streams. " +
			"The company generates revenue through direct sales, subscription services, and strategic partnerships. " +
			"Their competitive moat is built on strong brand recognition, technological innovation, and operational efficiency. " +
			"The business demonstrates strong unit economics with improving margins over time, supported by economies of scale and operational leverage.",
		Risks:         append([]string(nil), mockRisks...),
		GrowthDrivers: append([]string(nil), mockGrowthDrivers...),
	}
	return json.Marshal(payload)
}
