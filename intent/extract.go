package intent

import (
	"regexp"
	"strings"
)

// Word tokens are Unicode aware so "country Côte" yields "Côte" and not "C".
var countryPattern = regexp.MustCompile(`(?i)country\s*[-:]?\s*([\p{L}\p{N}_]+)`)

// ExtractCountry returns the word following "country" (with an optional - or : separator), or
// the last token of the message when there is no such phrase.
func ExtractCountry(message string) string {
	if match := countryPattern.FindStringSubmatch(message); match != nil {
		return match[1]
	}
	return lastToken(message)
}

// ExtractName returns the last whitespace-delimited token of the message.
func ExtractName(message string) string {
	return lastToken(message)
}

func lastToken(message string) string {
	fields := strings.Fields(message)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
