package mailer

// EmailJob is the JSON payload queued for the notify worker. A job either
// names a template under templates/ with Data to feed it, or carries a
// ready Subject plus Text and/or HTML.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// NewTemplateJob queues template for to.
func NewTemplateJob(to, template string, data map[string]any) EmailJob {
	return EmailJob{To: to, Template: template, Data: data}
}

// Templated reports whether the worker must render the job before sending.
func (j EmailJob) Templated() bool { return j.Template != "" }
