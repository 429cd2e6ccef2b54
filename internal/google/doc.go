// Package google provides OAuth2 authentication and token management for
// Google Calendar access.
//
// Tokens are stored per organizer identity so multiple users can connect
// their calendars to one running assistant. The TokenProvider interface
// allows different token sources to be plugged in, which keeps the calendar
// client testable without real credentials.
package google
