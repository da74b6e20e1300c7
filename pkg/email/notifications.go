package email

import (
	"fmt"
)

// Sender delivers platform emails. The default implementation sends through
// SMTP; tests substitute a recording stub.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends through the configured SMTP relay.
type SMTPSender struct{}

func (SMTPSender) Send(to, subject, body string) error {
	return SendEmail(to, subject, body)
}

// Notifier composes and sends the platform's transactional emails.
type Notifier struct {
	sender  Sender
	baseURL string
}

// NewNotifier creates a Notifier. baseURL is the public address of the app,
// used to build sign-in and connections links.
func NewNotifier(sender Sender, baseURL string) *Notifier {
	return &Notifier{sender: sender, baseURL: baseURL}
}

// ConnectionAccepted tells the original sender that their request was accepted.
func (n *Notifier) ConnectionAccepted(recipientEmail, recipientName, accepterName, accepterHeadline, accepterOrganisation string) error {
	subject := fmt.Sprintf("%s accepted your connection request | Codonyx", accepterName)

	body := fmt.Sprintf("Hello %s,\n\n%s has accepted your connection request on Codonyx. You are now connected and can collaborate directly.\n",
		recipientName, accepterName)
	if accepterHeadline != "" {
		body += fmt.Sprintf("\n%s", accepterHeadline)
	}
	if accepterOrganisation != "" {
		body += fmt.Sprintf("\n%s", accepterOrganisation)
	}
	body += fmt.Sprintf("\n\nView your connections: %s/connections\n", n.baseURL)

	return n.sender.Send(recipientEmail, subject, body)
}

// RegistrationApproved tells a registrant that an admin approved their profile.
func (n *Notifier) RegistrationApproved(recipientEmail, recipientName, userType string) error {
	subject := "Your Codonyx registration has been approved!"
	body := fmt.Sprintf("Hello %s,\n\nWe are pleased to inform you that your registration as a %s on Codonyx has been approved.\n\nYou can now sign in using your login credentials and start connecting with professionals across the network.\n\nSign in: %s/auth\n",
		recipientName, userType, n.baseURL)
	return n.sender.Send(recipientEmail, subject, body)
}

// RegistrationRejected tells a registrant that an admin rejected their profile.
func (n *Notifier) RegistrationRejected(recipientEmail, recipientName, userType string) error {
	subject := "Update on your Codonyx registration"
	body := fmt.Sprintf("Hello %s,\n\nWe regret to inform you that your registration as a %s on Codonyx has not been approved at this time.\n\nIf you believe this is an error or would like further information, please contact us at info@codonyx.org.\n",
		recipientName, userType)
	return n.sender.Send(recipientEmail, subject, body)
}

// VerificationLink sends the email-verification link after registration.
func (n *Notifier) VerificationLink(recipientEmail, token string) error {
	link := fmt.Sprintf("%s/auth/verify?token=%s", n.baseURL, token)
	body := fmt.Sprintf("Welcome to Codonyx!\n\nPlease verify your email by clicking the link below:\n%s\n", link)
	return n.sender.Send(recipientEmail, "Verify your email | Codonyx", body)
}

// PasswordReset sends the password-reset link.
func (n *Notifier) PasswordReset(recipientEmail, token string) error {
	link := fmt.Sprintf("%s/auth/reset-password?token=%s", n.baseURL, token)
	body := fmt.Sprintf("Click the link below to reset your Codonyx password:\n\n%s\n", link)
	return n.sender.Send(recipientEmail, "Reset Your Password | Codonyx", body)
}
