package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const countriesAPI = "restcountries"

// Country is the subset of a restcountries.com v3.1 record the chat replies use. Every field
// is optional in practice (Antarctica has no capital, for one).
type Country struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Capital    []string `json:"capital"`
	Region     string   `json:"region"`
	Population *int64   `json:"population"`
}

type Countries struct {
	baseURL string
	client  *http.Client
}

func NewCountries(baseURL string, client *http.Client) *Countries {
	if baseURL == "" {
		baseURL = DefaultCountriesURL
	}
	return &Countries{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Lookup fetches the first country matching term by name. A non-success status is reported as
// ErrNotFound.
func (c *Countries) Lookup(ctx context.Context, term string) (*Country, error) {
	resp, err := get(ctx, c.client, countriesAPI, c.baseURL+"/name/"+url.PathEscape(term))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("country lookup for %q returned %d (%s): %w", term, resp.StatusCode, resp.snippet(), ErrNotFound)
	}

	var result []Country
	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize country data: %w", err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no country data returned for '%s'", term)
	}

	return &result[0], nil
}
