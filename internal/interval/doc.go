// Package interval provides pure arithmetic on time intervals: clamping an
// interval to a window and subtracting busy ranges from a free range.
// It carries no dependencies and performs no I/O.
package interval
