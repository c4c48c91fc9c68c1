package entur

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const departuresQuery = `query($id: String!, $timeRange: Int!, $departures: Int!) {
  stopPlace(id: $id) {
    name
    estimatedCalls(timeRange: $timeRange, numberOfDepartures: $departures) {
      expectedDepartureTime
      destinationDisplay { frontText }
      serviceJourney {
        line { publicCode transportMode }
      }
    }
  }
}`

// Departure is one upcoming departure from a stop.
type Departure struct {
	Time        time.Time
	Line        string
	Mode        string
	Destination string
}

// DepartureBoard is the departures response for one stop.
type DepartureBoard struct {
	StopName   string
	Departures []Departure
}

type journeyResponse struct {
	Data struct {
		StopPlace *struct {
			Name           string `json:"name"`
			EstimatedCalls []struct {
				ExpectedDepartureTime string `json:"expectedDepartureTime"`
				DestinationDisplay    struct {
					FrontText string `json:"frontText"`
				} `json:"destinationDisplay"`
				ServiceJourney struct {
					Line struct {
						PublicCode    string `json:"publicCode"`
						TransportMode string `json:"transportMode"`
					} `json:"line"`
				} `json:"serviceJourney"`
			} `json:"estimatedCalls"`
		} `json:"stopPlace"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Departures fetches upcoming departures for stopID within the time window.
func (c *Client) Departures(ctx context.Context, stopID string, window time.Duration, limit int) (DepartureBoard, error) {
	var empty DepartureBoard
	if strings.TrimSpace(stopID) == "" {
		return empty, fmt.Errorf("%w: empty stop id", ErrRemote)
	}
	if window <= 0 {
		window = time.Hour
	}
	if limit <= 0 {
		limit = 20
	}

	payload, err := json.Marshal(map[string]any{
		"query": departuresQuery,
		"variables": map[string]any{
			"id":         stopID,
			"timeRange":  int(window.Seconds()),
			"departures": limit,
		},
	})
	if err != nil {
		return empty, fmt.Errorf("%w: encode query: %v", ErrRemote, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.journeyURL, bytes.NewReader(payload))
	if err != nil {
		return empty, fmt.Errorf("%w: build request: %v", ErrRemote, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("%w: departures: %v", ErrRemote, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("%w: read response: %v", ErrRemote, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return empty, fmt.Errorf("%w: journey planner http %d: %s", ErrRemote, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded journeyResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return empty, fmt.Errorf("%w: decode response: %v", ErrRemote, err)
	}
	if len(decoded.Errors) > 0 {
		return empty, fmt.Errorf("%w: journey planner: %s", ErrRemote, decoded.Errors[0].Message)
	}
	if decoded.Data.StopPlace == nil {
		return empty, fmt.Errorf("%w: no data for stop %s", ErrRemote, stopID)
	}

	board := DepartureBoard{StopName: decoded.Data.StopPlace.Name}
	for _, call := range decoded.Data.StopPlace.EstimatedCalls {
		when, err := time.Parse(time.RFC3339, call.ExpectedDepartureTime)
		if err != nil {
			continue
		}
		line := call.ServiceJourney.Line
		board.Departures = append(board.Departures, Departure{
			Time:        when,
			Line:        line.PublicCode,
			Mode:        line.TransportMode,
			Destination: call.DestinationDisplay.FrontText,
		})
	}
	return board, nil
}
