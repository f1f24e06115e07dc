package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasNegativeIntent(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected bool
	}{
		{
			name:     "should i not",
			question: "Should I not ask for a raise?",
			expected: true,
		},
		{
			name:     "shouldn't i",
			question: "Shouldn't I stay home tonight?",
			expected: true,
		},
		{
			name:     "shouldnt without apostrophe",
			question: "shouldnt i wait for the answer",
			expected: true,
		},
		{
			name:     "should i avoid",
			question: "Should I avoid my ex at the party?",
			expected: true,
		},
		{
			name:     "bad idea phrasing",
			question: "Is it a bad idea to invest right now?",
			expected: true,
		},
		{
			name:     "bad time phrasing",
			question: "Is it a bad time to start a business?",
			expected: true,
		},
		{
			name:     "don't i",
			question: "Don't I deserve better?",
			expected: true,
		},
		{
			name:     "bare avoid",
			question: "I want to avoid the meeting",
			expected: true,
		},
		{
			name:     "stay away",
			question: "should i stay away from him",
			expected: true,
		},
		{
			name:     "should i refuse",
			question: "Should I refuse the offer?",
			expected: true,
		},
		{
			name:     "should i reject",
			question: "should i reject their proposal",
			expected: true,
		},
		{
			name:     "should i stop",
			question: "Should I stop seeing her?",
			expected: true,
		},
		{
			name:     "should i delay",
			question: "Should I delay the launch?",
			expected: true,
		},
		{
			name:     "direct question is not negation",
			question: "Should I ask for a raise?",
			expected: false,
		},
		{
			name:     "quit is pull polarity not negation",
			question: "Should I quit my job?",
			expected: false,
		},
		{
			name:     "wait is pull polarity not negation",
			question: "Should I wait until next week?",
			expected: false,
		},
		{
			name:     "refuse needs the modal frame",
			question: "They might refuse my request",
			expected: false,
		},
		{
			name:     "empty input",
			question: "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasNegativeIntent(tt.question))
		})
	}
}

func TestDetectPolarity(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected Polarity
	}{
		{
			name:     "quit is pull",
			question: "Should I quit my job?",
			expected: Pull,
		},
		{
			name:     "invest is push",
			question: "Should I invest in this startup?",
			expected: Push,
		},
		{
			name:     "ask for is push",
			question: "Should I ask for a raise?",
			expected: Push,
		},
		{
			name:     "no directional keywords is neutral",
			question: "Does he think about me?",
			expected: Neutral,
		},
		{
			name:     "balanced counts are neutral",
			question: "Should I start something new or wait?",
			expected: Neutral,
		},
		{
			name:     "majority wins",
			question: "Should I pause, rest, and postpone the launch?",
			expected: Pull,
		},
		{
			name:     "empty input is neutral",
			question: "",
			expected: Neutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPolarity(tt.question))
		})
	}
}
