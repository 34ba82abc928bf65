package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/campus-social/pkg/mailer"
	mailtpl "github.com/oksasatya/campus-social/pkg/mailer/templates"
)

// SubjectFor is the fallback subject when a job carries neither a subject nor a template.
func SubjectFor(template string) string {
	switch strings.ToLower(template) {
	case mailtpl.VerifyOTP:
		return "Verify your email address"
	case mailtpl.ResetOTP:
		return "Reset your password"
	default:
		return "Notification"
	}
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
	job.Template = strings.ToLower(strings.TrimSpace(job.Template))
}
