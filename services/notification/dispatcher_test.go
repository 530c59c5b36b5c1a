package notification

import (
	"errors"
	"testing"
	"time"

	"redlink/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent    []string
	failFor map[string]error
}

func (f *fakeSender) Send(to, subject, htmlBody string) error {
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestSendRejectsEmptyRecipient(t *testing.T) {
	d := NewDispatcher(&fakeSender{})

	err := d.Send(Message{Subject: "hi", Body: "<p>hi</p>"})
	assert.Error(t, err)
}

func TestSendBatchReportsPerRecipientOutcome(t *testing.T) {
	sender := &fakeSender{failFor: map[string]error{
		"down@example.com": errors.New("mailbox unavailable"),
	}}
	d := NewDispatcher(sender)

	results := d.SendBatch([]Message{
		{To: "a@example.com", Subject: "s", Body: "b"},
		{To: "down@example.com", Subject: "s", Body: "b"},
		{To: "c@example.com", Subject: "s", Body: "b"},
	})

	require.Len(t, results, 3)
	assert.False(t, results[0].Failed())
	assert.True(t, results[1].Failed())
	assert.False(t, results[2].Failed())
	assert.Equal(t, "down@example.com", results[1].Recipient)

	// One failure never blocks the rest of the batch.
	assert.Equal(t, []string{"a@example.com", "c@example.com"}, sender.sent)
	assert.Equal(t, 1, CountFailed(results))
}

func TestOTPMessageContainsCodeAndExpiry(t *testing.T) {
	msg := OTPMessage("donor@example.com", "123456", 5*time.Minute)

	assert.Equal(t, "donor@example.com", msg.To)
	assert.Contains(t, msg.Body, "123456")
	assert.Contains(t, msg.Body, "5 minutes")
}

func TestBloodNeededMessageAddressesDonor(t *testing.T) {
	donor := user.User{FullName: "Asha Verma", Email: "asha@example.com"}
	msg := BloodNeededMessage(donor, "9000000009", "Karol Bagh", "Urgent surgery tomorrow")

	assert.Equal(t, "asha@example.com", msg.To)
	assert.Contains(t, msg.Body, "Asha Verma")
	assert.Contains(t, msg.Body, "9000000009")
	assert.Contains(t, msg.Body, "Karol Bagh")
	assert.Contains(t, msg.Body, "Urgent surgery tomorrow")
}
