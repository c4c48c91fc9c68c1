package entur

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"reise/internal/stopcache"
)

type geocoderResponse struct {
	Features []struct {
		Properties struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			County string `json:"county"`
			Label  string `json:"label"`
			Layer  string `json:"layer"`
		} `json:"properties"`
	} `json:"features"`
}

// Search asks the geocoder autocomplete for places matching text and returns
// them in response order. The stop flag is derived from the identifier
// namespace.
func (c *Client) Search(ctx context.Context, text string) ([]stopcache.Place, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty search text", ErrRemote)
	}

	endpoint, err := url.Parse(c.geocoderURL)
	if err != nil {
		return nil, fmt.Errorf("%w: geocoder url: %v", ErrRemote, err)
	}
	query := endpoint.Query()
	query.Set("text", text)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrRemote, err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", ErrRemote, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrRemote, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: geocoder http %d: %s", ErrRemote, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded geocoderResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRemote, err)
	}

	places := make([]stopcache.Place, 0, len(decoded.Features))
	for _, feat := range decoded.Features {
		props := feat.Properties
		places = append(places, stopcache.Place{
			ID:     props.ID,
			Name:   props.Name,
			County: props.County,
			Label:  props.Label,
			Layer:  props.Layer,
			IsStop: IsStopID(props.ID),
		})
	}
	return places, nil
}
