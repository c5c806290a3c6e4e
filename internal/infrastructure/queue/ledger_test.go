package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"rp_market/internal/domain/entity"
	"rp_market/internal/domain/value"
	"rp_market/internal/infrastructure/persistence/memory"
)

type fakeClient struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (c *fakeClient) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if c.err != nil {
		return nil, c.err
	}

	c.tasks = append(c.tasks, task)
	c.opts = append(c.opts, opts)

	return &asynq.TaskInfo{ID: "id", Queue: "ledger", Type: task.Type()}, nil
}

func sampleTx() entity.Transaction {
	return entity.Transaction{
		ID:           "tx_1",
		Actor:        "anon",
		Item:         "oil",
		Qty:          2,
		PricePerUnit: 10,
		TotalPrice:   20,
		Side:         value.SideBuy,
		Ts:           1,
	}
}

func TestLedgerQueue_RetryAppend(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	client := &fakeClient{}
	q := NewLedgerQueue(client, "ledger", 5)

	r.NoError(q.RetryAppend(context.Background(), sampleTx()))
	r.Len(client.tasks, 1)
	r.Equal(TypeLedgerAppend, client.tasks[0].Type())
	r.Contains(string(client.tasks[0].Payload()), `"id":"tx_1"`)

	var types []asynq.OptionType
	for _, opt := range client.opts[0] {
		types = append(types, opt.Type())
	}
	r.ElementsMatch([]asynq.OptionType{asynq.QueueOpt, asynq.MaxRetryOpt, asynq.TaskIDOpt}, types)
}

func TestLedgerQueue_RetryAppendErrors(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	conflict := NewLedgerQueue(&fakeClient{err: asynq.ErrTaskIDConflict}, "ledger", 5)
	r.NoError(conflict.RetryAppend(context.Background(), sampleTx()))

	down := NewLedgerQueue(&fakeClient{err: errors.New("dial tcp: refused")}, "ledger", 5)
	r.ErrorContains(down.RetryAppend(context.Background(), sampleTx()), "refused")
}

func TestLedgerAppendHandler(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ctx := context.Background()

	ledger := memory.NewLedgerStore()
	handle := NewLedgerAppendHandler(ledger)

	task, err := NewLedgerAppendTask(sampleTx())
	r.NoError(err)

	r.NoError(handle(ctx, task))
	r.NoError(handle(ctx, task))

	txs, err := ledger.Load(ctx)
	r.NoError(err)
	r.Equal([]entity.Transaction{sampleTx()}, txs)

	err = handle(ctx, asynq.NewTask(TypeLedgerAppend, []byte(`{`)))
	r.ErrorIs(err, asynq.SkipRetry)

	err = handle(ctx, asynq.NewTask(TypeLedgerAppend, []byte(`{"item":"oil"}`)))
	r.ErrorIs(err, asynq.SkipRetry)
}
