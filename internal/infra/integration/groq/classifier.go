package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xavierca1/material-portal/internal/entity"
	"github.com/xavierca1/material-portal/internal/infra/http/middleware"
)

// promptTemplate carries the fixed price list the sales team quotes from.
// The model must answer with bare JSON; fences are tolerated and stripped.
const promptTemplate = `You are an AI Sales Engineer for a Material/Decor brand in India.

PRICE LIST (Estimates in INR):
1. Laminate Flooring: ₹80 - ₹150 / sqft
2. Hardwood Flooring: ₹350 - ₹600 / sqft
3. Tiles/Ceramics: ₹60 - ₹120 / sqft
4. Lighting: ₹2000 - ₹5000 / unit
5. Installation: Add approx 20%% to material cost.

Task: Analyze this lead.
Name: %s
Message: %s

INSTRUCTIONS:
1. Identify ALL requirements.
2. Calculate cost for EACH item.
3. SUM them up for Total Estimated Quote.
4. Draft a PROFESSIONAL EMAIL response.

Return JSON (No Markdown):
{
    "intent": "HOT" (urgent), "WARM", or "COLD",
    "category": "General",
    "score": number 0-100,
    "reasoning": "Breakdown",
    "estimated_quote": "e.g., ₹1.2 Lakhs",
    "email_subject": "Quotation for your [Category] Requirement",
    "email_body": "Dear %s, based on your requirements, here is the estimate..."
}`

// Classifier turns a lead's name and message into a quote assessment. It
// never fails from the caller's point of view: a missing credential, a
// transport error, a non-2xx status or an answer that does not parse into a
// complete assessment all degrade to the fixed fallback.
type Classifier struct {
	client *Client
	log    zerolog.Logger
}

func NewClassifier(client *Client, log zerolog.Logger) *Classifier {
	return &Classifier{client: client, log: log}
}

func (c *Classifier) Classify(ctx context.Context, name, message string) entity.Assessment {
	if !c.client.HasCredential() {
		c.fallbackTaken("credential missing")
		return FallbackAssessment()
	}

	prompt := fmt.Sprintf(promptTemplate, name, message, name)

	raw, err := c.client.CreateCompletion(ctx, prompt)
	if err != nil {
		c.fallbackTaken(err.Error())
		return FallbackAssessment()
	}

	assessment, err := parseAssessment(raw)
	if err != nil {
		c.fallbackTaken(err.Error())
		return FallbackAssessment()
	}

	return assessment
}

func (c *Classifier) fallbackTaken(reason string) {
	middleware.RecordClassifierFallback()
	c.log.Warn().Str("reason", reason).Msg("classifier unavailable, using fallback assessment")
}

func parseAssessment(raw string) (entity.Assessment, error) {
	var assessment entity.Assessment
	if err := json.Unmarshal([]byte(stripFences(raw)), &assessment); err != nil {
		return entity.Assessment{}, fmt.Errorf("model answer is not valid JSON: %w", err)
	}
	if err := assessment.Validate(); err != nil {
		return entity.Assessment{}, fmt.Errorf("model answer incomplete: %w", err)
	}
	return assessment, nil
}

// stripFences removes an optional markdown code fence around the model's
// answer. Low-temperature models still wrap JSON in fences occasionally.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// FallbackAssessment is the canned answer used whenever the model cannot
// be reached or cannot be trusted. Callers never observe the failure.
func FallbackAssessment() entity.Assessment {
	return entity.Assessment{
		Intent:         entity.IntentWarm,
		Category:       "GENERAL",
		Score:          50,
		Reasoning:      "AI Unavailable",
		EstimatedQuote: "Contact us",
		EmailSubject:   "Inquiry Received",
		EmailBody:      "We will contact you shortly.",
	}
}
