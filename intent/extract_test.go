package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCountry(t *testing.T) {
	tests := map[string]string{
		"what is the capital of country France": "France",
		"Country: Japan please":                 "Japan",
		"country-Chile":                         "Chile",
		"COUNTRY   -   brazil now":              "brazil",
		"country Côte":                          "Côte",
		"tell me about countries like Kenya":    "Kenya",
		"capital of Peru":                       "Peru",
		"Peru":                                  "Peru",
		"":                                      "",
		"   ":                                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExtractCountry(in), "message %q", in)
	}
}

func TestExtractName(t *testing.T) {
	tests := map[string]string{
		"predict ethnicity for name John": "John",
		"Kenji":                           "Kenji",
		"name  Ana \t":                    "Ana",
		"":                                "",
		" \n ":                            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExtractName(in), "message %q", in)
	}
}
