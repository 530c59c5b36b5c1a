package notification

import (
	"fmt"

	"redlink/httpServices/mailer"
	"redlink/logger"
)

// Message is one rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// SendResult is the delivery outcome for a single recipient.
type SendResult struct {
	Recipient string `json:"recipient"`
	Err       error  `json:"-"`
}

// Failed reports whether this recipient's delivery failed.
func (r SendResult) Failed() bool {
	return r.Err != nil
}

// Dispatcher sends templated emails. Delivery is synchronous, best-effort
// and single-attempt; there is no retry or queueing.
type Dispatcher struct {
	sender mailer.Sender
}

func NewDispatcher(sender mailer.Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Send delivers one message.
func (d *Dispatcher) Send(msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("message has no recipient")
	}
	return d.sender.Send(msg.To, msg.Subject, msg.Body)
}

// SendBatch attempts delivery to each recipient independently and returns a
// per-recipient outcome. Partial failure is expected; the caller decides the
// aggregate policy.
func (d *Dispatcher) SendBatch(msgs []Message) []SendResult {
	results := make([]SendResult, 0, len(msgs))
	for _, msg := range msgs {
		err := d.Send(msg)
		if err != nil {
			logger.Error("Failed to send email to "+msg.To, err)
		}
		results = append(results, SendResult{Recipient: msg.To, Err: err})
	}
	return results
}

// CountFailed returns how many recipients in a batch result failed.
func CountFailed(results []SendResult) int {
	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	return failed
}
