package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs []namedJob
}

type namedJob struct {
	name string
	job  Job
}

func NewJobManager() *JobManager {
	return &JobManager{}
}

// Add registers a job. Jobs start in registration order.
func (jm *JobManager) Add(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts all scheduled jobs. When one fails, the jobs already
// started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
