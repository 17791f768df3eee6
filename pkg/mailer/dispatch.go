package mailer

import (
	"context"
	"errors"

	"github.com/oksasatya/classroom-activities/pkg/mailer/templates"
)

var ErrEmptyJob = errors.New("email job has no recipient or body")

// RenderError marks a job whose template could not be rendered. Retrying it will not help.
type RenderError struct {
	Template string
	Err      error
}

func (e *RenderError) Error() string { return "render " + e.Template + ": " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

func IsRenderError(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}

// Dispatch renders job (when it names a template) and hands it to s.
func Dispatch(ctx context.Context, s Sender, job EmailJob) error {
	if job.To == "" {
		return ErrEmptyJob
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Templated() {
		var err error
		subject, text, html, err = templates.Render(job.Template, job.Data)
		if err != nil {
			return &RenderError{Template: job.Template, Err: err}
		}
	}
	if subject == "" || (text == "" && html == "") {
		return ErrEmptyJob
	}
	return s.Send(ctx, job.To, subject, text, html)
}
