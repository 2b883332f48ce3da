// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/CS673-Team4/calstack/models"
)

// Mailer emails calendar invites over SMTP with an attached ICS body.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{Host: host, Port: port, Username: username, Password: password, From: from}
}

// Notify sends one invite email to all attendees.
func (m *Mailer) Notify(ctx context.Context, meeting models.Meeting, attendees []string, teamName string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrNotification, err)
	}

	ics, err := encodeInvite(meeting, attendees, teamName)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrNotification, err)
	}

	msg := buildMessage(m.From, attendees, teamName, meeting, ics)
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)

	if err := smtp.SendMail(addr, auth, m.From, attendees, msg); err != nil {
		return fmt.Errorf("%w: %v", models.ErrNotification, err)
	}
	return nil
}

// encodeInvite builds a VCALENDAR invite (METHOD:REQUEST) for the meeting.
func encodeInvite(meeting models.Meeting, attendees []string, teamName string) ([]byte, error) {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, meeting.ID)
	ve.Props.SetText(ical.PropSummary, fmt.Sprintf("%s team meeting", teamName))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, meeting.Slot.Start)
	ve.Props.SetDateTime(ical.PropDateTimeEnd, meeting.Slot.End)
	for _, attendee := range attendees {
		p := ical.NewProp(ical.PropAttendee)
		p.SetText(fmt.Sprintf("mailto:%s", attendee))
		ve.Props.Add(p)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//calstack//EN")
	cal.Props.SetText(ical.PropMethod, "REQUEST")
	cal.Children = append(cal.Children, ve)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildMessage(from string, attendees []string, teamName string, meeting models.Meeting, ics []byte) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(attendees, ", "))
	fmt.Fprintf(&b, "Subject: Meeting scheduled: %s, %s\r\n", teamName,
		meeting.Slot.Start.Format("Mon Jan 2 15:04 MST"))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/calendar; method=REQUEST; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.Write(ics)
	return b.Bytes()
}
