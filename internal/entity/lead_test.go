package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleAssessment() Assessment {
	return Assessment{
		Intent:         IntentHot,
		Category:       "Flooring",
		Score:          90,
		Reasoning:      "urgent, large area",
		EstimatedQuote: "₹1.2 Lakhs",
		EmailSubject:   "Quotation for your Flooring Requirement",
		EmailBody:      "Dear Asha, here is the estimate.",
	}
}

func TestNewLeadSeedsAssistantMessage(t *testing.T) {
	lead, err := NewLead("Asha", "asha@x.com", "9990001111", "Need 500 sqft laminate flooring", sampleAssessment())
	assert.NoError(t, err)

	assert.Equal(t, StatusNew, lead.Status)
	assert.NotEmpty(t, lead.ID)
	assert.Len(t, lead.ChatHistory, 1)
	assert.Equal(t, RoleAssistant, lead.ChatHistory[0].Role)
	assert.Equal(t, lead.EmailBody, lead.ChatHistory[0].Content)
}

func TestNewLeadIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		lead, err := NewLead("Asha", "asha@x.com", "9990001111", "tiles", sampleAssessment())
		assert.NoError(t, err)
		assert.False(t, seen[lead.ID])
		seen[lead.ID] = true
	}
}

func TestLeadValidateRejectsBadStatus(t *testing.T) {
	lead, err := NewLead("Asha", "asha@x.com", "9990001111", "tiles", sampleAssessment())
	assert.NoError(t, err)

	lead.Status = "MAYBE"
	assert.Error(t, lead.Validate())
}

func TestIsTerminal(t *testing.T) {
	lead := &Lead{Status: StatusNew}
	assert.False(t, lead.IsTerminal())
	lead.Status = StatusContacted
	assert.False(t, lead.IsTerminal())
	lead.Status = StatusWon
	assert.True(t, lead.IsTerminal())
	lead.Status = StatusLost
	assert.True(t, lead.IsTerminal())
}

func TestAssessmentValidate(t *testing.T) {
	a := sampleAssessment()
	assert.NoError(t, a.Validate())

	bad := sampleAssessment()
	bad.Intent = "LUKEWARM"
	assert.Error(t, bad.Validate())

	bad = sampleAssessment()
	bad.Score = 140
	assert.Error(t, bad.Validate())

	bad = sampleAssessment()
	bad.EmailBody = ""
	assert.Error(t, bad.Validate())
}
