package operator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/babylonchain/lsthub/config"
	"github.com/babylonchain/lsthub/host"
	"github.com/babylonchain/lsthub/metrics"
	"github.com/babylonchain/lsthub/operator"
	"github.com/babylonchain/lsthub/types"
)

func operatorConfig() *config.OperatorConfig {
	return &config.OperatorConfig{
		Sender:              "operator",
		SubmitBatchInterval: 10 * time.Millisecond,
		ReconcileInterval:   10 * time.Millisecond,
		HarvestInterval:     10 * time.Millisecond,
		RetryPolicy: config.RetryPolicyConfig{
			Attempts:        3,
			InitialInterval: "1ms",
			MaxInterval:     "2ms",
		},
	}
}

func newSetup(t *testing.T) (*host.Executor, *operator.Operator, *metrics.OperatorMetrics) {
	cfg := config.DefaultConfig()
	cfg.Hub.EpochPeriod = 50
	cfg.Hub.UnbondPeriod = 100
	cfg.Ledger.UnbondingTime = 100
	require.NoError(t, cfg.Validate())

	m := metrics.NewOperatorMetrics()
	e, err := host.NewFromConfig(cfg, zap.NewNop(), m.HubMetrics)
	require.NoError(t, err)

	op, err := operator.New(operatorConfig(), zap.NewNop(), e, m)
	require.NoError(t, err)
	return e, op, m
}

func coins(amount int64, denom string) sdk.Coins {
	return sdk.NewCoins(sdk.NewInt64Coin(denom, amount))
}

func TestRunOnceWithNothingToDo(t *testing.T) {
	_, op, m := newSetup(t)

	require.NoError(t, op.RunOnce(context.Background()))
	require.Equal(t, uint64(3), op.Runs())
	for _, task := range []string{operator.TaskSubmitBatch, operator.TaskReconcile, operator.TaskHarvest} {
		require.Equal(t, float64(1), testutil.ToFloat64(m.TaskSkippedCounter.WithLabelValues(task)), task)
		require.Zero(t, testutil.ToFloat64(m.TaskFailuresCounter.WithLabelValues(task)), task)
	}
}

func TestRunOnceDrivesBatchLifecycle(t *testing.T) {
	e, op, m := newSetup(t)
	cfg := config.DefaultConfig()
	user := cfg.Ledger.GenesisAccounts[0].Address
	denom := cfg.Hub.BaseDenom

	_, err := e.Execute(user, coins(1000, denom), types.MsgBond{})
	require.NoError(t, err)
	stakeDenom := types.StakeDenom(cfg.Hub.Address, cfg.Hub.StakeSubdenom)
	_, err = e.Execute(user, coins(400, stakeDenom), types.MsgQueueUnbond{})
	require.NoError(t, err)

	// not due yet
	require.NoError(t, op.RunOnce(context.Background()))
	_, err = e.Query(types.QueryPreviousBatch{ID: 1})
	require.ErrorIs(t, err, types.ErrBatchNotFound)

	e.Advance(50)
	require.NoError(t, op.RunOnce(context.Background()))
	res, err := e.Query(types.QueryPreviousBatch{ID: 1})
	require.NoError(t, err)
	require.False(t, res.(types.Batch).Reconciled)
	require.Equal(t, float64(1), testutil.ToFloat64(m.TaskRunsCounter.WithLabelValues(operator.TaskSubmitBatch)))

	e.Advance(101)
	require.NoError(t, op.RunOnce(context.Background()))
	res, err = e.Query(types.QueryPreviousBatch{ID: 1})
	require.NoError(t, err)
	require.True(t, res.(types.Batch).Reconciled)
	require.Equal(t, float64(1), testutil.ToFloat64(m.TaskRunsCounter.WithLabelValues(operator.TaskReconcile)))

	_, err = e.Execute(user, nil, types.MsgWithdrawUnbonded{})
	require.NoError(t, err)
}

func TestHarvestReinvestsRewards(t *testing.T) {
	e, op, m := newSetup(t)
	cfg := config.DefaultConfig()
	user := cfg.Ledger.GenesisAccounts[0].Address
	denom := cfg.Hub.BaseDenom
	validator := cfg.Hub.Validators[0]

	_, err := e.Execute(user, coins(1000, denom), types.MsgBond{})
	require.NoError(t, err)
	require.NoError(t, e.Reward(validator, coins(100, denom)))

	require.NoError(t, op.RunOnce(context.Background()))
	require.Equal(t, float64(1), testutil.ToFloat64(m.TaskRunsCounter.WithLabelValues(operator.TaskHarvest)))

	res, err := e.Query(types.QueryState{})
	require.NoError(t, err)
	require.Equal(t, "1095", res.(types.StateResponse).TotalBonded.String())
}

type flakyHub struct {
	calls int
	err   error
}

func (f *flakyHub) Execute(string, sdk.Coins, types.Msg) (*host.Result, error) {
	return nil, f.err
}

func (f *flakyHub) Query(types.Query) (any, error) {
	f.calls++
	return nil, f.err
}

func (f *flakyHub) Now() uint64 { return 0 }

func TestUnknownErrorsAreRetried(t *testing.T) {
	hub := &flakyHub{err: errors.New("connection reset")}
	m := metrics.NewOperatorMetrics()
	cfg := operatorConfig()
	cfg.HarvestInterval = 0
	op, err := operator.New(cfg, zap.NewNop(), hub, m)
	require.NoError(t, err)

	err = op.RunOnce(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, operator.TaskSubmitBatch)
	require.ErrorContains(t, err, operator.TaskReconcile)
	// both tasks query first, each attempt once per retry
	require.Equal(t, 6, hub.calls)
	require.Equal(t, float64(1), testutil.ToFloat64(m.TaskFailuresCounter.WithLabelValues(operator.TaskSubmitBatch)))
}

func TestHubErrorsAreNotRetried(t *testing.T) {
	hub := &flakyHub{err: types.ErrUnauthorizedNotOwner}
	cfg := operatorConfig()
	cfg.HarvestInterval = 0
	op, err := operator.New(cfg, zap.NewNop(), hub, metrics.NewOperatorMetrics())
	require.NoError(t, err)

	require.Error(t, op.RunOnce(context.Background()))
	require.Equal(t, 2, hub.calls)
}

func TestStartStop(t *testing.T) {
	_, op, _ := newSetup(t)

	op.Start()
	require.Eventually(t, func() bool {
		return op.Runs() >= 3
	}, 2*time.Second, 5*time.Millisecond)
	op.Stop()
	// stopping twice is a no-op
	op.Stop()
	require.False(t, op.Busy())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := operatorConfig()
	cfg.Sender = ""
	_, err := operator.New(cfg, zap.NewNop(), &flakyHub{}, metrics.NewOperatorMetrics())
	require.Error(t, err)
}
