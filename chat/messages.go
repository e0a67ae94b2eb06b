package chat

const (
	emptyMessage          = "Please enter a message."
	missingCountryMessage = "Please specify a country name."
	missingNameMessage    = "Please specify a name."
	helpMessage           = "🤖 I can help you with countries or name ethnicity! Try asking about one."

	countryNotFoundFormat = "Sorry, I couldn't find the country '%s'."
	noPredictionFormat    = "I couldn’t predict the ethnicity for '%s'."
	ethnicityUnavailable  = "Sorry, I couldn’t fetch ethnicity data right now."

	errorPrefix  = "⚠️ Error: "
	notAvailable = "N/A"
)
