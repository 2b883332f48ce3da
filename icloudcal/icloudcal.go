// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package icloudcal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"

	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/schedule"
)

const caldavEndpoint = "https://caldav.icloud.com/"

// customTransport handles adding Basic Auth and custom headers to requests.
type customTransport struct {
	Username  string
	Password  string
	Transport http.RoundTripper
}

// RoundTrip adds required headers and authentication to each request.
func (t *customTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.Username, t.Password)
	req.Header.Set("User-Agent", "calstack/1.0")
	return t.Transport.RoundTrip(req)
}

// Client reads busy intervals from a CalDAV calendar (iCloud).
type Client struct {
	caldavClient *caldav.Client
	logger       *slog.Logger
	calendarPath string
	username     string
}

// NewClient creates and initializes a new CalDAV client. The calendar is
// discovered by name via principal and home-set lookups, so construction
// performs network round trips.
func NewClient(ctx context.Context, logger *slog.Logger, username, password, calendarName string) (*Client, error) {
	transport := &customTransport{
		Username:  username,
		Password:  password,
		Transport: http.DefaultTransport,
	}
	httpClient := &http.Client{Transport: transport}

	caldavClient, err := caldav.NewClient(httpClient, caldavEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}

	c := &Client{
		caldavClient: caldavClient,
		logger:       logger,
		username:     username,
	}

	logger.Info("Finding CalDAV calendar", "calendarName", calendarName)
	calendarPath, err := c.findCalendar(ctx, calendarName)
	if err != nil {
		return nil, fmt.Errorf("could not find calendar '%s': %w", calendarName, err)
	}
	c.calendarPath = calendarPath
	logger.Info("Successfully found CalDAV calendar", "path", calendarPath)

	return c, nil
}

// BusyWindow fetches events over [start, end) and returns their spans as
// busy intervals in UTC. All-day events without a concrete time are skipped.
func (c *Client) BusyWindow(ctx context.Context, email string, start, end time.Time) ([]schedule.Interval, error) {
	c.logger.Debug("Querying CalDAV events", "email", email, "start", start, "end", end)

	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name:  ical.CompCalendar,
			Comps: []caldav.CalendarCompRequest{{Name: ical.CompEvent, AllProps: true}},
		},
		CompFilter: caldav.CompFilter{
			Name: ical.CompCalendar,
			Comps: []caldav.CompFilter{{
				Name:  ical.CompEvent,
				Start: start.UTC(),
				End:   end.UTC(),
			}},
		},
	}

	objects, err := c.caldavClient.QueryCalendar(ctx, c.calendarPath, query)
	if err != nil {
		return nil, fmt.Errorf("%w: caldav query: %v", models.ErrUpstreamUnavailable, err)
	}

	var busy []schedule.Interval
	for _, obj := range objects {
		if obj.Data == nil {
			continue
		}
		for _, event := range obj.Data.Events() {
			evStart, err := event.DateTimeStart(time.UTC)
			if err != nil {
				continue
			}
			evEnd, err := event.DateTimeEnd(time.UTC)
			if err != nil {
				continue
			}
			iv, err := schedule.NewInterval(evStart.UTC(), evEnd.UTC())
			if err != nil {
				c.logger.Warn("Skipping zero-length event", "path", obj.Path)
				continue
			}
			busy = append(busy, iv)
		}
	}

	c.logger.Info("Fetched busy intervals from CalDAV", "email", email, "count", len(busy))
	return busy, nil
}

// findCalendar discovers the user's calendars and returns the path for the one with the matching name.
func (c *Client) findCalendar(ctx context.Context, name string) (string, error) {
	principalPath, err := c.caldavClient.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find principal path: %w", err)
	}

	homeSetPath, err := c.caldavClient.FindCalendarHomeSet(ctx, principalPath)
	if err != nil {
		return "", fmt.Errorf("failed to find calendar home set: %w", err)
	}

	calendars, err := c.caldavClient.FindCalendars(ctx, homeSetPath)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}

	for _, cal := range calendars {
		if strings.EqualFold(cal.Name, name) {
			return cal.Path, nil
		}
	}

	return "", fmt.Errorf("no calendar found with name '%s'", name)
}
