package domain

// ContactSubmission carries sanitized contact-form fields on their way to the
// mailer. Never persisted.
type ContactSubmission struct {
	Firstname string
	Lastname  string
	Subject   string
}
