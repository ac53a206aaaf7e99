// Package event provides the ordered, priority-aware listener lists the
// dispatcher fires its three phases through. Listeners bound to a phase run
// in descending priority and, within a priority, in registration order.
package event
