package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-social/internal/domain/port"
	"github.com/oksasatya/campus-social/pkg/mailer"
)

type chanPublisher struct {
	jobs chan any
	err  error
}

func (p *chanPublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs <- body
	return p.err
}

func TestQueueNotifier_PublishesEmailJob(t *testing.T) {
	pub := &chanPublisher{jobs: make(chan any, 1)}
	n := NewQueueNotifier(pub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	n.Notify(ctx, "a@isbstudent.comsats.edu.pk", port.Notice{Template: "otp", Data: map[string]any{"Code": "123456"}})
	cancel()

	select {
	case got := <-pub.jobs:
		job, ok := got.(mailer.EmailJob)
		require.True(t, ok)
		assert.Equal(t, "a@isbstudent.comsats.edu.pk", job.To)
		assert.Equal(t, "otp", job.Template)
		assert.Equal(t, "123456", job.Data["Code"])
	case <-time.After(time.Second):
		t.Fatal("job not published")
	}
}

func TestQueueNotifier_LogsFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	pub := &chanPublisher{jobs: make(chan any, 1), err: errors.New("channel closed")}
	n := NewQueueNotifier(pub, logger)

	n.Notify(context.Background(), "b@isbstudent.comsats.edu.pk", port.Notice{Template: "otp"})
	<-pub.jobs

	assert.Eventually(t, func() bool {
		e := hook.LastEntry()
		return e != nil && e.Level == logrus.ErrorLevel
	}, time.Second, 10*time.Millisecond)
}
