package operator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/vending-server/internal/operator/actions"
	"github.com/carson-networks/vending-server/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage Storage
	queue   chan ActionItem
	log     logrus.FieldLogger
}

// Storage opens the write transaction an action runs in.
type Storage interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

func NewOperator(s Storage, queue chan ActionItem, log logrus.FieldLogger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		log:     log,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		if rbErr := writer.Rollback(); rbErr != nil {
			o.log.WithError(rbErr).WithField("action", item.action.Name()).Warn("Operator.rollbackFailed")
		}
		item.response <- ActionItemResponse{err: err}
		return
	}

	if err = writer.Commit(); err != nil {
		o.log.WithError(err).WithField("action", item.action.Name()).Error("Operator.commitFailed")
		item.response <- ActionItemResponse{err: err}
		return
	}

	item.response <- ActionItemResponse{}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
