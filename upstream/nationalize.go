package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const nationalizeAPI = "nationalize"

type CountryProbability struct {
	CountryID   string  `json:"country_id"`
	Probability float64 `json:"probability"`
}

// Prediction is the api.nationalize.io answer for a single name.
type Prediction struct {
	Name    string               `json:"name"`
	Count   int                  `json:"count"`
	Country []CountryProbability `json:"country"`
}

type Nationalize struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewNationalize builds a nationality predictor. apiKey is optional, the free tier works
// without one.
func NewNationalize(baseURL string, apiKey string, client *http.Client) *Nationalize {
	if baseURL == "" {
		baseURL = DefaultNationalizeURL
	}
	return &Nationalize{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

func (n *Nationalize) Predict(ctx context.Context, name string) (*Prediction, error) {
	params := url.Values{}
	params.Set("name", name)
	if n.apiKey != "" {
		params.Set("apikey", n.apiKey)
	}

	resp, err := get(ctx, n.client, nationalizeAPI, n.baseURL+"/?"+params.Encode())
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nationality prediction for %q returned %d (%s): %w", name, resp.StatusCode, resp.snippet(), ErrUnavailable)
	}

	var prediction Prediction
	err = json.Unmarshal(resp.Body, &prediction)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize nationality prediction: %w", err)
	}

	return &prediction, nil
}
