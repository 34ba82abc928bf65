package mailer

// EmailJob is the JSON payload put on the RabbitMQ email queue.
// A job either names a Template rendered by the email worker from Data, or
// carries a ready Subject with Text and optional HTML bodies.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // verify_otp or reset_otp
	Data     map[string]any `json:"data,omitempty"`
}
