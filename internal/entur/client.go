package entur

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	defaultGeocoderURL = "https://api.entur.io/geocoder/v1/autocomplete"
	defaultJourneyURL  = "https://api.entur.io/journey-planner/v3/graphql"
	defaultClientName  = "reise-cli"
	defaultHTTPTimeout = 15 * time.Second

	// stopPlacePrefix is the identifier namespace of transit stops; only
	// results in it can be chosen for departures.
	stopPlacePrefix = "NSR:StopPlace:"

	clientNameHeader = "ET-Client-Name"
	requestIDHeader  = "ET-Client-Request"
)

// ErrRemote marks a failed or unusable remote response.
var ErrRemote = errors.New("remote request failed")

// Client talks to the Entur APIs.
type Client struct {
	geocoderURL string
	journeyURL  string
	clientName  string
	requestID   string
	httpClient  *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithGeocoderURL overrides the geocoder endpoint (tests/mocks).
func WithGeocoderURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimSpace(u); u != "" {
			c.geocoderURL = u
		}
	}
}

// WithJourneyURL overrides the journey-planner endpoint (tests/mocks).
func WithJourneyURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimSpace(u); u != "" {
			c.journeyURL = u
		}
	}
}

// WithClientName sets the ET-Client-Name header value.
func WithClientName(name string) Option {
	return func(c *Client) {
		if name = strings.TrimSpace(name); name != "" {
			c.clientName = name
		}
	}
}

// WithRequestID tags outgoing requests with a correlation id.
func WithRequestID(id string) Option {
	return func(c *Client) {
		c.requestID = strings.TrimSpace(id)
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient constructs an Entur client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		geocoderURL: defaultGeocoderURL,
		journeyURL:  defaultJourneyURL,
		clientName:  defaultClientName,
		httpClient:  &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set(clientNameHeader, c.clientName)
	if c.requestID != "" {
		req.Header.Set(requestIDHeader, c.requestID)
	}
}

// IsStopID reports whether id belongs to the stop place namespace.
func IsStopID(id string) bool {
	return strings.HasPrefix(id, stopPlacePrefix)
}
