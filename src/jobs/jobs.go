package jobs

import (
	"context"
	"time"

	"git.dsvv.ac.in/cs/newsportal/src/logging"
	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"
)

/*
 * Background work for the portal process. A Job owns a context that is
 * canceled on shutdown, and reports back when it has actually stopped, so
 * the website can wait for every job before exiting.
 */

type Job struct {
	Name   string
	Ctx    context.Context
	Logger zerolog.Logger
	cancel func()
	done   chan struct{}
}

func New(name string) *Job {
	logger := logging.With().Str("job", name).Logger()
	ctx, cancel := context.WithCancel(context.Background())
	ctx = logging.AttachLoggerToContext(&logger, ctx)
	return &Job{
		Name:   name,
		Ctx:    ctx,
		Logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Asks the job to stop. Called from outside the job.
func (j *Job) Cancel() {
	j.cancel()
}

func (j *Job) Canceled() <-chan struct{} {
	return j.Ctx.Done()
}

// Marks the job as stopped. Called by the job itself.
func (j *Job) Finish() *Job {
	close(j.done)
	return j
}

func (j *Job) Finished() <-chan struct{} {
	return j.done
}

// Periodic runs work immediately and then every interval until canceled.
// A failed run is retried sooner, on an exponential backoff capped at the
// interval, so a backend that is briefly down doesn't leave stale data
// around for a whole interval.
func Periodic(name string, interval time.Duration, work func(ctx context.Context) error) *Job {
	job := New(name)
	go func() {
		defer job.Finish()
		defer logging.LogPanics(&job.Logger)

		b := &backoff.Backoff{
			Min:    interval / 20,
			Max:    interval,
			Factor: 2,
			Jitter: true,
		}
		for {
			wait := interval
			if err := work(job.Ctx); err != nil {
				wait = b.Duration()
				job.Logger.Warn().Err(err).Dur("retryIn", wait).Msg("periodic job failed")
			} else {
				b.Reset()
			}

			timer := time.NewTimer(wait)
			select {
			case <-job.Canceled():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
	return job
}

// Jobs is a plain slice so it can be built with slice syntax.
type Jobs []*Job

// Cancels every job and waits for them to finish, up to timeout. Returns the
// names of jobs that did not finish in time.
func (jobs Jobs) CancelAndWait(timeout time.Duration) []string {
	allDoneChan := make(chan struct{})
	for _, job := range jobs {
		job.Cancel()
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	go func() {
		for _, job := range jobs {
			<-job.Finished()
		}
		close(allDoneChan)
	}()

	select {
	case <-timer.C:
		return jobs.ListUnfinished()
	case <-allDoneChan:
		return nil
	}
}

func (jobs Jobs) ListUnfinished() []string {
	unfinished := []string{}
	for _, job := range jobs {
		select {
		case <-job.Finished():
			continue
		default:
			unfinished = append(unfinished, job.Name)
		}
	}
	return unfinished
}
