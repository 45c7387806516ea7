package operator

import (
	"context"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/babylonchain/lsthub/config"
	"github.com/babylonchain/lsthub/metrics"
	"github.com/babylonchain/lsthub/types"
)

const (
	TaskSubmitBatch = "submit-batch"
	TaskReconcile   = "reconcile"
	TaskHarvest     = "harvest"
)

// Operator periodically submits due batches, reconciles matured ones and
// harvests rewards on behalf of the configured sender.
type Operator struct {
	// service-related fields
	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
	quit      chan struct{}

	cfg     *config.OperatorConfig
	logger  *zap.Logger
	hub     HubClient
	metrics *metrics.OperatorMetrics

	retrySleepTime    time.Duration
	maxRetrySleepTime time.Duration

	// serializes task runs so tickers firing together never interleave
	taskMu sync.Mutex
	runs   atomic.Uint64
	busy   atomic.Bool
}

type task struct {
	name     string
	interval time.Duration
	run      func() (bool, error)
}

func New(cfg *config.OperatorConfig, parentLogger *zap.Logger, hub HubClient, m *metrics.OperatorMetrics) (*Operator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	retrySleepTime, maxRetrySleepTime := cfg.RetryPolicy.Intervals()

	return &Operator{
		quit:              make(chan struct{}),
		cfg:               cfg,
		logger:            parentLogger.With(zap.String("module", "operator")),
		hub:               hub,
		metrics:           m,
		retrySleepTime:    retrySleepTime,
		maxRetrySleepTime: maxRetrySleepTime,
	}, nil
}

func (o *Operator) tasks() []task {
	tasks := []task{
		{name: TaskSubmitBatch, interval: o.cfg.SubmitBatchInterval, run: o.submitBatch},
		{name: TaskReconcile, interval: o.cfg.ReconcileInterval, run: o.reconcile},
	}
	if o.cfg.HarvestInterval > 0 {
		tasks = append(tasks, task{name: TaskHarvest, interval: o.cfg.HarvestInterval, run: o.harvest})
	}
	return tasks
}

func (o *Operator) Start() {
	o.startOnce.Do(func() {
		o.logger.Info("starting operator", zap.String("sender", o.cfg.Sender))

		for _, t := range o.tasks() {
			o.wg.Add(1)
			go o.loop(t)
		}

		o.logger.Info("operator started")
	})
}

func (o *Operator) Stop() {
	o.stopOnce.Do(func() {
		o.logger.Info("stopping operator")
		close(o.quit)
		o.wg.Wait()
		o.logger.Info("operator stopped", zap.Uint64("task_runs", o.runs.Load()))
	})
}

// Busy reports whether a task is executing right now.
func (o *Operator) Busy() bool {
	return o.busy.Load()
}

// Runs is the number of task runs that completed, skipped ones included.
func (o *Operator) Runs() uint64 {
	return o.runs.Load()
}

func (o *Operator) loop(t task) {
	defer o.wg.Done()
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	ctx, cancel := o.quitContext()
	defer cancel()

	for {
		select {
		case <-ticker.C:
			if err := o.runTask(ctx, t); err != nil {
				o.logger.Error("operator task failed", zap.String("task", t.name), zap.Error(err))
			}
		case <-o.quit:
			o.logger.Debug("operator task loop quit", zap.String("task", t.name))
			return
		}
	}
}

// RunOnce runs every task one time, in order, and returns the failures of
// all of them.
func (o *Operator) RunOnce(ctx context.Context) error {
	var result *multierror.Error
	for _, t := range o.tasks() {
		if err := o.runTask(ctx, t); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// runTask retries t until it succeeds, reports nothing to do, or fails with
// an error a retry can't fix.
func (o *Operator) runTask(ctx context.Context, t task) error {
	o.taskMu.Lock()
	defer o.taskMu.Unlock()
	o.busy.Store(true)
	defer o.busy.Store(false)

	var skipped bool
	err := retry.Do(func() error {
		var err error
		skipped, err = t.run()
		return err
	},
		retry.Context(ctx),
		retry.Attempts(o.cfg.RetryPolicy.Attempts),
		retry.Delay(o.retrySleepTime),
		retry.MaxDelay(o.maxRetrySleepTime),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			o.logger.Debug("retrying operator task",
				zap.String("task", t.name), zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	o.runs.Inc()

	switch kind := types.KindOf(err); {
	case err == nil && skipped, kind == types.KindTemporal, kind == types.KindState:
		// the hub moved on between the check and the call, or nothing was due
		o.metrics.TaskSkippedCounter.WithLabelValues(t.name).Inc()
		if err != nil {
			o.logger.Debug("operator task had nothing to do", zap.String("task", t.name), zap.Error(err))
		}
		return nil
	case err != nil:
		o.metrics.TaskFailuresCounter.WithLabelValues(t.name).Inc()
		return multierror.Prefix(err, t.name+":")
	}

	o.metrics.TaskRunsCounter.WithLabelValues(t.name).Inc()
	o.metrics.LastSuccessTimestampVec.WithLabelValues(t.name).SetToCurrentTime()
	return nil
}

// retryable holds for failures outside the hub's own error codes, such as
// ledger faults; hub errors are deterministic for the same state.
func retryable(err error) bool {
	return types.KindOf(err) == types.KindUnknown
}

func (o *Operator) quitContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	o.wg.Add(1)
	go func() {
		defer cancel()
		defer o.wg.Done()

		select {
		case <-o.quit:

		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
