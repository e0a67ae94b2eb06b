package intent

import "strings"

type Intent string

const (
	Country   Intent = "COUNTRY"
	Ethnicity Intent = "ETHNICITY"
	Unknown   Intent = "UNKNOWN"
)

var (
	countryKeywords   = []string{"country", "countries", "capital"}
	ethnicityKeywords = []string{"ethnicity", "origin", "name"}
)

func (i Intent) String() string {
	return string(i)
}

// Classify picks an intent from keyword substrings in the message. Country keywords are checked
// first, so "what country is the name Ana from" is a Country question.
func Classify(message string) Intent {
	lower := strings.ToLower(message)
	if containsAny(lower, countryKeywords) {
		return Country
	}
	if containsAny(lower, ethnicityKeywords) {
		return Ethnicity
	}
	return Unknown
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// Decision is the routing outcome for a single message.
type Decision struct {
	Intent Intent
	Term   string
}

// Route classifies the message and extracts the query term the matching lookup needs.
func Route(message string) Decision {
	switch in := Classify(message); in {
	case Country:
		return Decision{Intent: in, Term: ExtractCountry(message)}
	case Ethnicity:
		return Decision{Intent: in, Term: ExtractName(message)}
	default:
		return Decision{Intent: Unknown}
	}
}
