package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	to      string
	subject string
	body    string
}

func (r *recordingSender) Send(to, subject, body string) error {
	r.to = to
	r.subject = subject
	r.body = body
	return nil
}

func TestConnectionAccepted(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(sender, "https://app.codonyx.org")

	err := n.ConnectionAccepted("alice@example.com", "Alice", "Dr. Bob", "Senior Advisor", "Helix Labs")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", sender.to)
	assert.Contains(t, sender.subject, "Dr. Bob")
	assert.Contains(t, sender.body, "Hello Alice")
	assert.Contains(t, sender.body, "Senior Advisor")
	assert.Contains(t, sender.body, "Helix Labs")
	assert.Contains(t, sender.body, "https://app.codonyx.org/connections")
}

func TestRegistrationDecisionEmails(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(sender, "https://app.codonyx.org")

	require.NoError(t, n.RegistrationApproved("lab@example.com", "Helix Labs", "laboratory"))
	assert.Contains(t, sender.subject, "approved")
	assert.Contains(t, sender.body, "laboratory")
	assert.Contains(t, sender.body, "https://app.codonyx.org/auth")

	require.NoError(t, n.RegistrationRejected("lab@example.com", "Helix Labs", "laboratory"))
	assert.Contains(t, sender.body, "not been approved")
}

func TestVerificationLink(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(sender, "https://app.codonyx.org")

	require.NoError(t, n.VerificationLink("new@example.com", "tok-123"))
	assert.Contains(t, sender.body, "https://app.codonyx.org/auth/verify?token=tok-123")
}
