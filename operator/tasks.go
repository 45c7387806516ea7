package operator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/babylonchain/lsthub/types"
)

const batchPageSize = 30

// submitBatch submits the pending batch once its start time has passed and
// it holds at least one request.
func (o *Operator) submitBatch() (bool, error) {
	res, err := o.hub.Query(types.QueryPendingBatch{})
	if err != nil {
		return false, err
	}
	pending, ok := res.(types.PendingBatch)
	if !ok {
		return false, fmt.Errorf("unexpected pending batch response %T", res)
	}

	now := o.hub.Now()
	if now < pending.EstUnbondStartTime || pending.SharesToBurn.IsZero() {
		return true, nil
	}

	if _, err := o.hub.Execute(o.cfg.Sender, nil, types.MsgSubmitBatch{}); err != nil {
		return false, err
	}
	o.logger.Info("submitted unbonding batch",
		zap.Uint64("batch_id", pending.ID),
		zap.String("shares", pending.SharesToBurn.String()))
	return false, nil
}

// reconcile runs when some unreconciled batch has finished unbonding.
func (o *Operator) reconcile() (bool, error) {
	due, err := o.maturedUnreconciled()
	if err != nil {
		return false, err
	}
	if len(due) == 0 {
		return true, nil
	}

	if _, err := o.hub.Execute(o.cfg.Sender, nil, types.MsgReconcile{}); err != nil {
		return false, err
	}
	o.logger.Info("reconciled unbonding batches", zap.Uint64s("batch_ids", due))
	return false, nil
}

func (o *Operator) maturedUnreconciled() ([]uint64, error) {
	now := o.hub.Now()

	var (
		due        []uint64
		startAfter *uint64
	)
	for {
		res, err := o.hub.Query(types.QueryPreviousBatches{StartAfter: startAfter, Limit: batchPageSize})
		if err != nil {
			return nil, err
		}
		batches, ok := res.([]types.Batch)
		if !ok {
			return nil, fmt.Errorf("unexpected previous batches response %T", res)
		}

		for _, b := range batches {
			if !b.Reconciled && b.Matured(now) {
				due = append(due, b.ID)
			}
		}

		if len(batches) < batchPageSize {
			return due, nil
		}
		last := batches[len(batches)-1].ID
		startAfter = &last
	}
}

func (o *Operator) harvest() (bool, error) {
	if _, err := o.hub.Execute(o.cfg.Sender, nil, types.MsgHarvest{}); err != nil {
		return false, err
	}
	o.logger.Info("harvested rewards")
	return false, nil
}
