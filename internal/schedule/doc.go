// Package schedule contains the scheduling core: resolving a requested
// availability window against "now", proposing meeting slots from busy
// intervals and user preferences, and normalizing a chosen slot before it is
// committed to a calendar backend.
//
// All functions are pure transforms over their inputs; the package performs
// no I/O and holds no state between calls.
package schedule
