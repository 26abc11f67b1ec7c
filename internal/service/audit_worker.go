package service

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/metrics"
	"github.com/credtrailhq/credtrail/internal/models"
)

// AuditJob represents a single audit entry to be recorded outside any row
// transaction, such as a session event.
type AuditJob struct {
	Table    string
	RecordID string
	Action   string
	Data     map[string]any
	Actor    models.Actor
}

// AuditWorker buffers audit entries and writes them via a single worker
// goroutine, so login paths never block on the audit insert.
type AuditWorker struct {
	recorder domain.EventRecorder
	log      *logrus.Logger
	jobs     chan *AuditJob
}

// NewAuditWorker creates an AuditWorker with the given queue capacity.
func NewAuditWorker(recorder domain.EventRecorder, log *logrus.Logger, queueSize int) *AuditWorker {
	if queueSize <= 0 {
		queueSize = 1000
	}
	return &AuditWorker{
		recorder: recorder,
		log:      log,
		jobs:     make(chan *AuditJob, queueSize),
	}
}

// Enqueue adds an audit job. Non-blocking; drops the job if the queue is full.
func (w *AuditWorker) Enqueue(job *AuditJob) {
	select {
	case w.jobs <- job:
		metrics.AuditQueueDepth.Set(float64(len(w.jobs)))
	default:
		metrics.AuditEventsDropped.Inc()
		w.log.WithField("action", job.Action).Warn("audit queue full, dropping entry")
	}
}

// Run processes audit jobs until the context is cancelled, then drains remaining jobs.
func (w *AuditWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case job := <-w.jobs:
			w.process(job)
		}
	}
}

func (w *AuditWorker) drain() {
	for {
		select {
		case job := <-w.jobs:
			w.process(job)
		default:
			return
		}
	}
}

func (w *AuditWorker) process(job *AuditJob) {
	defer metrics.AuditQueueDepth.Set(float64(len(w.jobs)))

	data, err := json.Marshal(job.Data)
	if err != nil {
		w.log.WithError(err).Warn("audit payload marshal failed")
		return
	}

	// The request context is long gone by the time the job runs.
	if err := w.recorder.RecordEvent(
		context.Background(), job.Table, job.RecordID, job.Action, data, job.Actor,
	); err != nil {
		w.log.WithError(err).Warn("audit record failed")
	}
}
