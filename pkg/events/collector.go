package events

// EventCollector accumulates events raised while an aggregate is built. The
// zero value is ready to use.
type EventCollector struct {
	pending []DomainEvent
}

// Record queues event for publishing.
func (c *EventCollector) Record(event DomainEvent) {
	c.pending = append(c.pending, event)
}

// Events returns the queued events without clearing them.
func (c *EventCollector) Events() []DomainEvent {
	return c.pending
}

// ClearEvents hands back the queued events and empties the queue; call it
// once the events have been published.
func (c *EventCollector) ClearEvents() []DomainEvent {
	drained := c.pending
	c.pending = nil
	return drained
}
