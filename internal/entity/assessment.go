package entity

import (
	"errors"
	"fmt"
)

const (
	IntentHot  = "HOT"
	IntentWarm = "WARM"
	IntentCold = "COLD"
)

// Assessment is the structured output of the quote classifier. The model is
// instructed to return exactly these fields; anything missing or out of
// range is rejected before it reaches a Lead.
type Assessment struct {
	Intent         string `json:"intent"`
	Category       string `json:"category"`
	Score          int    `json:"score"`
	Reasoning      string `json:"reasoning"`
	EstimatedQuote string `json:"estimated_quote"`
	EmailSubject   string `json:"email_subject"`
	EmailBody      string `json:"email_body"`
}

func (a *Assessment) Validate() error {
	switch a.Intent {
	case IntentHot, IntentWarm, IntentCold:
	default:
		return fmt.Errorf("intent must be HOT, WARM or COLD, got %q", a.Intent)
	}
	if a.Score < 0 || a.Score > 100 {
		return fmt.Errorf("score must be 0-100, got %d", a.Score)
	}
	if a.Category == "" {
		return errors.New("category is required")
	}
	if a.Reasoning == "" {
		return errors.New("reasoning is required")
	}
	if a.EstimatedQuote == "" {
		return errors.New("estimated_quote is required")
	}
	if a.EmailSubject == "" {
		return errors.New("email_subject is required")
	}
	if a.EmailBody == "" {
		return errors.New("email_body is required")
	}
	return nil
}
