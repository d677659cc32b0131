package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Job is a recurring maintenance task executed by the scheduler service.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

type scheduler struct {
	jobs []Job
}

func NewScheduler(jobs ...Job) (*scheduler, error) {
	for _, j := range jobs {
		if j.Name == "" || j.Interval <= 0 || j.Run == nil {
			return nil, fmt.Errorf("invalid job definition: %+v", j)
		}
	}
	return &scheduler{jobs: jobs}, nil
}

func (s *scheduler) Name() string { return "scheduler" }

func (s *scheduler) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	for _, j := range s.jobs {
		job := j
		if _, err := sched.NewJob(
			gocron.DurationJob(job.Interval),
			gocron.NewTask(func() { job.Run(ctx) }),
			gocron.WithName(job.Name),
		); err != nil {
			return fmt.Errorf("scheduling job %q: %w", job.Name, err)
		}
		slog.Info("job scheduled", "name", job.Name, "interval", job.Interval)
	}

	sched.Start()
	<-ctx.Done()

	return sched.Shutdown()
}
