package operator

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/vending-server/internal/operator/actions"
)

var ErrStopped = errors.New("operator delegator stopped")

// OperatorDelegator manages the queue, starts/stops Operators (workers), and enqueues items.
type OperatorDelegator struct {
	storage    Storage
	queue      chan ActionItem
	numWorkers int
	log        logrus.FieldLogger
	wg         sync.WaitGroup
	stopOnce   sync.Once
	mu         sync.RWMutex
	stopped    bool
}

func NewOperatorDelegator(s Storage, numWorkers int, log logrus.FieldLogger) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &OperatorDelegator{
		storage:    s,
		queue:      make(chan ActionItem, 1000),
		numWorkers: numWorkers,
		log:        log,
	}
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.storage, d.queue, d.log.WithField("worker", i))
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
	d.log.WithField("workers", d.numWorkers).Info("OperatorDelegator.Started")
}

// Stop closes the queue and waits for queued actions to drain.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		close(d.queue)
		d.mu.Unlock()
		d.wg.Wait()
		d.log.Info("OperatorDelegator.Stopped")
	})
}

// Process queues action and waits for it to be performed and committed.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	d.mu.RLock()
	if d.stopped {
		d.mu.RUnlock()
		return ErrStopped
	}
	select {
	case d.queue <- item:
		d.mu.RUnlock()
	case <-ctx.Done():
		d.mu.RUnlock()
		return ctx.Err()
	}

	// A queued item always gets a response, and the worker stops early on a cancelled ctx.
	// Waiting for it reports a commit that landed after cancellation as the success it was.
	resp := <-respCh
	return resp.err
}
