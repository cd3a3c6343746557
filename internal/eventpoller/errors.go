package eventpoller

import "errors"

var (
	ErrQueueFull      = errors.New("eventpoller: critical queue full")
	ErrQueueDuplicate = errors.New("eventpoller: event id already queued")
)
