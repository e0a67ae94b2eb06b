package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"what is the capital of country France", Country},
		{"Tell me about COUNTRIES in Europe", Country},
		{"Capital of Peru?", Country},
		{"predict ethnicity for name John", Ethnicity},
		{"what is the origin of Ana", Ethnicity},
		{"NAME Kenji", Ethnicity},
		{"which country does the name Ana come from", Country},
		{"hello there", Unknown},
		{"", Unknown},
		{"   ", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	msg := "predict ethnicity for name John"
	first := Classify(msg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(msg))
	}
}

func TestRoute(t *testing.T) {
	assert.Equal(t, Decision{Intent: Country, Term: "France"}, Route("what is the capital of country France"))
	assert.Equal(t, Decision{Intent: Ethnicity, Term: "John"}, Route("predict ethnicity for name John"))
	assert.Equal(t, Decision{Intent: Unknown}, Route("hello there"))
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "COUNTRY", Country.String())
	assert.Equal(t, "ETHNICITY", Ethnicity.String())
	assert.Equal(t, "UNKNOWN", Unknown.String())
}
