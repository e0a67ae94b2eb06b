package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"intent-chat/config"
	"intent-chat/intent"
	"intent-chat/metrics"
	"intent-chat/upstream"
)

type Outcome string

const (
	OutcomeAnswered     Outcome = "answered"
	OutcomeEmpty        Outcome = "empty"
	OutcomeMissingTerm  Outcome = "missing_term"
	OutcomeHelp         Outcome = "help"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeNoPrediction Outcome = "no_prediction"
	OutcomeUnavailable  Outcome = "unavailable"
	OutcomeFault        Outcome = "fault"
)

// Answerer is what the HTTP server and the lambda handler need from a Responder.
type Answerer interface {
	Respond(ctx context.Context, message string) Reply
}

type CountryLookup interface {
	Lookup(ctx context.Context, term string) (*upstream.Country, error)
}

type NationalityPredictor interface {
	Predict(ctx context.Context, name string) (*upstream.Prediction, error)
}

// Reply is the result of answering one message. Exactly one of Text or Err is meaningful: Err
// carries faults that are only turned into chat text by Message.
type Reply struct {
	// Intent is empty when the message was blank and never routed
	Intent  intent.Intent
	Term    string
	Text    string
	Err     error
	Outcome Outcome
}

// Message renders the reply as the text sent back to the user.
func (r Reply) Message() string {
	if r.Err != nil {
		return errorPrefix + r.Err.Error()
	}
	return r.Text
}

type Responder struct {
	countries CountryLookup
	names     NationalityPredictor
	logger    *slog.Logger
}

func NewResponder(countries CountryLookup, names NationalityPredictor, logger *slog.Logger) *Responder {
	return &Responder{
		countries: countries,
		names:     names,
		logger:    logger,
	}
}

// New wires a Responder to the public APIs described by cfg.
func New(cfg config.Config, logger *slog.Logger) *Responder {
	client := upstream.NewHTTPClient(cfg.Upstream.Timeout)
	return NewResponder(
		upstream.NewCountries(cfg.Upstream.CountriesURL, client),
		upstream.NewNationalize(cfg.Upstream.NationalizeURL, cfg.Nationalize.APIKey, client),
		logger,
	)
}

// Respond answers a single chat message. It never returns an error: faults are carried in the
// Reply so callers can always answer with Reply.Message.
func (r *Responder) Respond(ctx context.Context, message string) Reply {
	message = strings.TrimSpace(message)
	if message == "" {
		return r.finish(ctx, Reply{Text: emptyMessage, Outcome: OutcomeEmpty})
	}

	decision := intent.Route(message)
	metrics.MessagesRouted.WithLabelValues(decision.Intent.String()).Inc()

	var reply Reply
	switch decision.Intent {
	case intent.Country:
		reply = r.country(ctx, decision.Term)
	case intent.Ethnicity:
		reply = r.ethnicity(ctx, decision.Term)
	default:
		reply = Reply{Text: helpMessage, Outcome: OutcomeHelp}
	}
	reply.Intent = decision.Intent
	reply.Term = decision.Term

	return r.finish(ctx, reply)
}

func (r *Responder) country(ctx context.Context, term string) Reply {
	if term == "" {
		return Reply{Text: missingCountryMessage, Outcome: OutcomeMissingTerm}
	}

	country, err := r.countries.Lookup(ctx, term)
	if errors.Is(err, upstream.ErrNotFound) {
		r.log(ctx).WarnContext(ctx, "country lookup found nothing", slog.String("term", term), slog.Any("error", err))
		return Reply{Text: fmt.Sprintf(countryNotFoundFormat, term), Outcome: OutcomeNotFound}
	}
	if err != nil {
		return Reply{Err: err, Outcome: OutcomeFault}
	}

	return Reply{Text: FormatCountry(country, term), Outcome: OutcomeAnswered}
}

func (r *Responder) ethnicity(ctx context.Context, name string) Reply {
	if name == "" {
		return Reply{Text: missingNameMessage, Outcome: OutcomeMissingTerm}
	}

	prediction, err := r.names.Predict(ctx, name)
	if errors.Is(err, upstream.ErrUnavailable) {
		r.log(ctx).WarnContext(ctx, "nationality prediction unavailable", slog.String("name", name), slog.Any("error", err))
		return Reply{Text: ethnicityUnavailable, Outcome: OutcomeUnavailable}
	}
	if err != nil {
		return Reply{Err: err, Outcome: OutcomeFault}
	}

	if len(prediction.Country) == 0 {
		return Reply{Text: fmt.Sprintf(noPredictionFormat, name), Outcome: OutcomeNoPrediction}
	}

	return Reply{Text: FormatPrediction(name, prediction), Outcome: OutcomeAnswered}
}

func (r *Responder) finish(ctx context.Context, reply Reply) Reply {
	metrics.RepliesSent.WithLabelValues(string(reply.Outcome)).Inc()
	if reply.Err != nil {
		r.log(ctx).ErrorContext(ctx, "failed to answer chat message",
			slog.String("intent", reply.Intent.String()),
			slog.String("term", reply.Term),
			slog.Any("error", reply.Err))
	}
	return reply
}

type loggerKey struct{}

// ContextWithLogger attaches a request scoped logger that Respond uses instead of its own.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the logger attached with ContextWithLogger, or fallback.
func LoggerFromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return fallback
}

func (r *Responder) log(ctx context.Context) *slog.Logger {
	return LoggerFromContext(ctx, r.logger)
}
