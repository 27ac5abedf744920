package category

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "merchant name with dining keyword",
			text: "Starbucks coffee",
			want: "Dining",
		},
		{
			name: "unknown merchant falls back",
			text: "unknown merchant xyz",
			want: "Other",
		},
		{
			name: "empty string falls back",
			text: "",
			want: "Other",
		},
		{
			name: "whitespace only falls back",
			text: "   \t  ",
			want: "Other",
		},
		{
			name: "case insensitive match",
			text: "MEGA SUPERMARKET #42",
			want: "Shopping",
		},
		{
			name: "keyword embedded in longer word",
			text: "downtown parking garage",
			want: "Transport",
		},
		{
			name: "housing utilities",
			text: "monthly electricity payment",
			want: "Housing",
		},
		{
			name: "medical visit",
			text: "city hospital outpatient",
			want: "Medical",
		},
		{
			name: "education expense",
			text: "spring semester tuition",
			want: "Education",
		},
		{
			name: "communication expense",
			text: "phone bill top-up",
			want: "Communication",
		},
		{
			name: "entertainment expense",
			text: "imax movie night",
			want: "Entertainment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.text))
		})
	}
}

func TestCategorize_TieBreakByDeclarationOrder(t *testing.T) {
	// Dining is declared before Shopping, so a text containing keywords
	// from both resolves to Dining regardless of keyword position.
	assert.Equal(t, "Dining", Categorize("restaurant then supermarket"))
	assert.Equal(t, "Dining", Categorize("supermarket next to the restaurant"))

	// Housing is declared before Communication, so the shared "broadband"
	// prefix resolves to Housing even for "broadband fee".
	assert.Equal(t, "Housing", Categorize("broadband fee for march"))
}

func TestCategorize_TotalOverArbitraryInput(t *testing.T) {
	known := map[string]bool{Fallback: true}
	for _, label := range Labels() {
		known[label] = true
	}

	inputs := []string{
		"",
		" ",
		"\n\t",
		"1234567890",
		"!@#$%^&*()",
		strings.Repeat("x", 10_000),
		"咖啡店",           // non-ASCII input is fine, it simply may not match
		"RESTAURANT!!!", // punctuation around a keyword still matches
	}

	for _, in := range inputs {
		got := Categorize(in)
		assert.True(t, known[got], "Categorize(%q) returned unknown label %q", in, got)
		// Idempotence over repeated calls.
		assert.Equal(t, got, Categorize(in))
	}
}

func TestLabels_OrderIsStable(t *testing.T) {
	want := []string{
		"Dining", "Shopping", "Transport", "Entertainment",
		"Housing", "Medical", "Education", "Communication",
	}
	assert.Equal(t, want, Labels())
	assert.Equal(t, want, Labels())
}
