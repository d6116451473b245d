package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerCancelAndWait(t *testing.T) {
	t.Run("finishes fast enough", func(t *testing.T) {
		testJobs := Jobs{
			FakeJob("Job A", time.Millisecond*100),
			FakeJob("Job B", time.Millisecond*200),
		}

		before := time.Now()
		unfinished := testJobs.CancelAndWait(time.Second * 1)
		after := time.Now()
		assert.WithinDuration(t, after, before, time.Millisecond*500, "jobs did not finish fast enough")
		assert.Len(t, unfinished, 0)
	})
	t.Run("reports unfinished jobs", func(t *testing.T) {
		testJobs := Jobs{
			FakeJob("Job A", time.Millisecond*100),
			FakeJob("Job B", time.Second*10),
		}

		unfinished := testJobs.CancelAndWait(time.Second * 1)
		assert.Equal(t, []string{"Job B"}, unfinished)
	})
}

func TestPeriodic(t *testing.T) {
	t.Run("runs immediately and stops on cancel", func(t *testing.T) {
		var runs atomic.Int32
		job := Periodic("featured", time.Hour, func(ctx context.Context) error {
			runs.Add(1)
			return nil
		})

		assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, time.Millisecond*10)
		assert.Empty(t, Jobs{job}.CancelAndWait(time.Second))
		assert.Equal(t, int32(1), runs.Load())
	})
	t.Run("retries failures before the interval", func(t *testing.T) {
		var runs atomic.Int32
		job := Periodic("flaky", time.Second*2, func(ctx context.Context) error {
			if runs.Add(1) < 3 {
				return errors.New("backend unavailable")
			}
			return nil
		})

		assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second*2, time.Millisecond*10)
		assert.Empty(t, Jobs{job}.CancelAndWait(time.Second))
	})
}

func FakeJob(name string, timeout time.Duration) *Job {
	job := New(name)
	go func() {
		<-job.Ctx.Done()
		timer := time.NewTimer(timeout)
		<-timer.C
		job.Finish()
	}()
	return job
}
