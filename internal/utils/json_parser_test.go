package utils

import "testing"

type twoFields struct {
	Bedrooms  string `json:"bedrooms"`
	Bathrooms string `json:"bathrooms"`
}

func TestParseAIJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  twoFields
	}{
		{
			name:  "plain json",
			input: `{"bedrooms": "2", "bathrooms": "1"}`,
			want:  twoFields{Bedrooms: "2", Bathrooms: "1"},
		},
		{
			name:  "fenced with language tag",
			input: "```json\n{\"bedrooms\": \"3\", \"bathrooms\": \"\"}\n```",
			want:  twoFields{Bedrooms: "3"},
		},
		{
			name:  "fenced without language tag",
			input: "```\n{\"bedrooms\": \"1\", \"bathrooms\": \"1\"}\n```",
			want:  twoFields{Bedrooms: "1", Bathrooms: "1"},
		},
		{
			name:  "embedded in prose",
			input: `Sure! Here is the extraction: {"bedrooms": "2", "bathrooms": "1"} Let me know if you need more.`,
			want:  twoFields{Bedrooms: "2", Bathrooms: "1"},
		},
		{
			name:  "trailing comma",
			input: `{"bedrooms": "2", "bathrooms": "1",}`,
			want:  twoFields{Bedrooms: "2", Bathrooms: "1"},
		},
		{
			name:  "leading bom and whitespace",
			input: "\ufeff  {\"bedrooms\": \"2\", \"bathrooms\": \"\"}  ",
			want:  twoFields{Bedrooms: "2"},
		},
		{
			name:  "braces inside string values",
			input: `note first {"bedrooms": "{2}", "bathrooms": "1"} note after`,
			want:  twoFields{Bedrooms: "{2}", Bathrooms: "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got twoFields
			if err := ParseAIJSON(tt.input, &got); err != nil {
				t.Fatalf("ParseAIJSON failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParseAIJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"no json at all", "I cannot answer that."},
		{"unterminated object", `{"bedrooms": "2"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got twoFields
			if err := ParseAIJSON(tt.input, &got); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
