// Package calendar wraps the Google Calendar API for the two operations the
// scheduling assistant needs: querying busy intervals for an organizer's
// calendar and creating events with optional Google Meet conferencing.
package calendar
