package chat

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"intent-chat/upstream"
)

// FormatCountry renders a country record, substituting term for a missing common name and N/A
// for any other missing field.
func FormatCountry(country *upstream.Country, term string) string {
	name := country.Name.Common
	if name == "" {
		name = term
	}

	capital := notAvailable
	if len(country.Capital) > 0 {
		capital = strings.Join(country.Capital, ", ")
	}

	region := country.Region
	if region == "" {
		region = notAvailable
	}

	population := notAvailable
	if country.Population != nil {
		population = message.NewPrinter(language.English).Sprintf("%d", *country.Population)
	}

	return fmt.Sprintf("🌎 Country: %s\nCapital: %s\nRegion: %s\nPopulation: %s\n", name, capital, region, population)
}

// FormatPrediction lists every candidate country as "<code> (<pct>%)" in the order the API
// returned them.
func FormatPrediction(name string, prediction *upstream.Prediction) string {
	candidates := make([]string, len(prediction.Country))
	for i, c := range prediction.Country {
		candidates[i] = fmt.Sprintf("%s (%.1f%%)", c.CountryID, c.Probability*100)
	}

	return fmt.Sprintf("🔠 The name **%s** is most likely associated with: %s",
		cases.Title(language.Und).String(name), strings.Join(candidates, ", "))
}
