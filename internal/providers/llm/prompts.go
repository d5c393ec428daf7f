package llm

import (
	"context"
	"fmt"
	"strings"
)

// MessageRequest carries everything the generation prompt needs. Fields are
// plain strings so the adapter stays decoupled from the persistence models.
type MessageRequest struct {
	ProspectName     string
	ProspectTitle    string
	ProspectCompany  string
	ProspectIndustry string
	ProspectLocation string

	Template string
	Tone     string

	CompanyName     string
	CompanyIndustry string
	ValueProp       string
}

func orUnspecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

// Generate produces a personalized outreach message body.
func (c *Client) Generate(ctx context.Context, req MessageRequest) (string, error) {
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}

	system := fmt.Sprintf(`You are an expert B2B sales copywriter specializing in LinkedIn outreach. Your goal is to create personalized, engaging messages that:
- Feel authentic and conversational, not salesy
- Reference specific details about the prospect's role and company
- Clearly communicate value without being pushy
- Are concise (under 300 characters for LinkedIn connection requests, under 500 for follow-ups)
- Include a specific, easy-to-answer question or soft call-to-action
- Maintain a %s tone throughout

Never use generic phrases like "I came across your profile" or "I hope this message finds you well."`, tone)

	var sb strings.Builder
	fmt.Fprintf(&sb, `Generate a personalized LinkedIn message using the following information:

PROSPECT INFORMATION:
- Name: %s
- Title: %s
- Company: %s
- Industry: %s
- Location: %s
`,
		req.ProspectName,
		orUnspecified(req.ProspectTitle),
		orUnspecified(req.ProspectCompany),
		orUnspecified(req.ProspectIndustry),
		orUnspecified(req.ProspectLocation))

	if req.CompanyName != "" {
		fmt.Fprintf(&sb, `
OUR COMPANY:
- Name: %s
- Industry: %s
- Value Proposition: %s
`, req.CompanyName, req.CompanyIndustry, req.ValueProp)
	}

	fmt.Fprintf(&sb, `
MESSAGE TEMPLATE (use as inspiration, not word-for-word):
%s

REQUIREMENTS:
- Keep it under 300 characters for connection requests or 500 for messages
- Reference something specific about their role or company
- Make it feel like a human wrote it, not AI
- Focus on starting a conversation, not making a sale
- End with a question or soft CTA

Generate only the message text, nothing else.`, req.Template)

	return c.complete(ctx, system, sb.String(), 1024)
}

// GenerateSubject produces a short subject line for a message body.
func (c *Client) GenerateSubject(ctx context.Context, body string) (string, error) {
	system := `You are an expert sales copywriter. Write short, specific subject lines that earn an open without clickbait.`
	user := fmt.Sprintf(`Write a subject line for this outreach message:

"%s"

Keep it under 8 words. Return only the subject line, nothing else.`, body)

	subject, err := c.complete(ctx, system, user, 64)
	if err != nil {
		return "", err
	}
	return strings.Trim(subject, `"`), nil
}

// Improve rewrites a message to be tighter and more engaging.
func (c *Client) Improve(ctx context.Context, original string) (string, error) {
	system := `You are an expert sales copywriter. Improve the given LinkedIn message to make it more engaging, concise, and effective while maintaining its core intent.`
	user := fmt.Sprintf(`Improve this LinkedIn message:

"%s"

Make it:
- More concise and punchy
- More engaging and personalized
- Professional but approachable
- Clear in its value proposition
- End with a compelling question or CTA

Return only the improved message, nothing else.`, original)

	return c.complete(ctx, system, user, 512)
}

// Variations produces count distinct rewrites of a base message. The model
// separates variations with "---"; extras beyond count are discarded.
func (c *Client) Variations(ctx context.Context, base string, count int) ([]string, error) {
	if count <= 0 {
		count = DefaultVariationCount
	}

	system := fmt.Sprintf(`You are an expert sales copywriter. Generate %d different variations of the given message, each with a slightly different approach or angle while maintaining the core value proposition.`, count)
	user := fmt.Sprintf(`Generate %d variations of this message:

"%s"

Each variation should:
- Have a different opening hook
- Maintain the same core value proposition
- Be equally concise and engaging
- Feel distinct from the others

Return only the %d variations, separated by "---" on new lines.`, count, base, count)

	text, err := c.complete(ctx, system, user, 1500)
	if err != nil {
		return nil, err
	}
	return SplitVariations(text, count), nil
}

// SplitVariations parses a "---"-separated completion into at most count
// non-empty variations.
func SplitVariations(text string, count int) []string {
	parts := strings.Split(text, "---")
	out := make([]string, 0, count)
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
		if len(out) == count {
			break
		}
	}
	return out
}

// Insights summarizes funnel statistics into actionable observations.
func (c *Client) Insights(ctx context.Context, statsJSON string) (string, error) {
	system := `You are an expert sales strategist. Analyze outreach funnel statistics and provide actionable insights.`
	user := fmt.Sprintf(`Analyze these outreach statistics and provide:
1. Key observations about funnel performance
2. Concrete suggestions to improve response and conversion rates

Statistics:
%s

Keep it under 200 words. Return plain text, no markdown headings.`, statsJSON)

	return c.complete(ctx, system, user, 1024)
}
