// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/schedule"
)

// Client queries Google Calendar freebusy data for a single account.
type Client struct {
	service *calendar.Service
	logger  *slog.Logger
}

// NewClient creates an authenticated Google Calendar client. The token is
// loaded from token-<account>.json, written by a prior OAuth consent flow.
func NewClient(ctx context.Context, logger *slog.Logger, clientID, clientSecret, account string) (*Client, error) {
	config := OAuthConfig(clientID, clientSecret)

	tokenFile := fmt.Sprintf("token-%s.json", account)
	token, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("could not load token for account %s: %w", account, err)
	}

	httpClient := config.Client(ctx, token)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &Client{service: service, logger: logger}, nil
}

// OAuthConfig returns the OAuth2 config used for the consent flow and for
// refreshing stored tokens.
func OAuthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       []string{calendar.CalendarReadonlyScope},
		Endpoint:     google.Endpoint,
	}
}

// BusyWindow fetches the account's busy intervals from the primary calendar
// over [start, end), normalized to UTC.
func (c *Client) BusyWindow(ctx context.Context, email string, start, end time.Time) ([]schedule.Interval, error) {
	c.logger.Debug("Fetching freebusy window", "email", email, "start", start, "end", end)

	req := &calendar.FreeBusyRequest{
		TimeMin: start.UTC().Format(time.RFC3339),
		TimeMax: end.UTC().Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: "primary"}},
	}
	resp, err := c.service.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: freebusy query: %v", models.ErrUpstreamUnavailable, err)
	}

	cal, ok := resp.Calendars["primary"]
	if !ok {
		return nil, fmt.Errorf("%w: freebusy response missing primary calendar", models.ErrUpstreamUnavailable)
	}

	var busy []schedule.Interval
	for _, period := range cal.Busy {
		iv, err := schedule.ParseInterval(period.Start, period.End)
		if err != nil {
			c.logger.Warn("Skipping malformed busy period", "start", period.Start, "end", period.End, "error", err)
			continue
		}
		busy = append(busy, iv)
	}

	c.logger.Info("Fetched busy intervals from Google Calendar", "email", email, "count", len(busy))
	return busy, nil
}

// SaveToken writes an OAuth token to a file path after the consent flow.
func SaveToken(path string, token *oauth2.Token) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create token file: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}
