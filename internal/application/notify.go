package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	"github.com/oksasatya/classroom-activities/pkg/helpers"
	"github.com/oksasatya/classroom-activities/pkg/mailer"
	tpl "github.com/oksasatya/classroom-activities/pkg/mailer/templates"
)

// Publisher queues notification jobs. *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

var _ Publisher = (*helpers.RabbitPublisher)(nil)

// notifier publishes best effort; a failed publish is logged and never fails the caller.
type notifier struct {
	pub     Publisher
	appName string
	logger  *logrus.Logger
}

func (n *notifier) enabled() bool { return n != nil && n.pub != nil }

func (n *notifier) publish(ctx context.Context, job mailer.EmailJob) {
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := n.pub.PublishJSON(c, job); err != nil {
		helpers.LogWarn(n.logger, "publish notification failed", err, logrus.Fields{"template": job.Template})
	}
}

func (n *notifier) activityAssigned(ctx context.Context, teacher *entity.User, activity *entity.Activity, students []entity.User) {
	if !n.enabled() {
		return
	}
	teacherName := ""
	if teacher != nil {
		teacherName = teacher.Name
	}
	for _, st := range students {
		n.publish(ctx, mailer.NewTemplateJob(st.Email, tpl.ActivityAssigned, tpl.ToMap(tpl.NotificationData{
			AppName:        n.appName,
			RecipientName:  st.Name,
			RecipientEmail: st.Email,
			TeacherName:    teacherName,
			StudentName:    st.Name,
			ActivityTitle:  activity.Title,
		})))
	}
}

func (n *notifier) submissionReceived(ctx context.Context, teacher, student *entity.User, activity *entity.Activity, submission string) {
	if !n.enabled() || teacher == nil {
		return
	}
	studentName := ""
	if student != nil {
		studentName = student.Name
	}
	n.publish(ctx, mailer.NewTemplateJob(teacher.Email, tpl.SubmissionReceived, tpl.ToMap(tpl.NotificationData{
		AppName:        n.appName,
		RecipientName:  teacher.Name,
		RecipientEmail: teacher.Email,
		TeacherName:    teacher.Name,
		StudentName:    studentName,
		ActivityTitle:  activity.Title,
		Submission:     submission,
	})))
}
