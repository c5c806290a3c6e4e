// Package queue — очередь повторной записи сделок в журнал (asynq поверх Redis).
package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"rp_market/internal/domain/entity"
	"rp_market/pkg/contextx"
	"rp_market/pkg/logx"
)

const TypeLedgerAppend = "ledger:append"

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type LedgerAppender interface {
	Append(ctx context.Context, tx entity.Transaction) error
}

// LedgerQueue ставит в очередь сделки, которые не удалось записать в журнал сразу.
type LedgerQueue struct {
	client   Enqueuer
	queue    string
	maxRetry int
}

func NewLedgerQueue(client Enqueuer, queue string, maxRetry int) *LedgerQueue {
	return &LedgerQueue{client: client, queue: queue, maxRetry: maxRetry}
}

// RetryAppend ставит задачу с id сделки в качестве id задачи, так что
// повторная постановка той же сделки не создаёт дубль.
func (q *LedgerQueue) RetryAppend(ctx context.Context, tx entity.Transaction) error {
	task, err := NewLedgerAppendTask(tx)
	if err != nil {
		return err
	}

	info, err := q.client.EnqueueContext(ctx, task,
		asynq.Queue(q.queue),
		asynq.MaxRetry(q.maxRetry),
		asynq.TaskID(tx.ID),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}

		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	logger(ctx).Info("ledger append queued", logx.FieldTxID, tx.ID, "queue", info.Queue)

	return nil
}

func NewLedgerAppendTask(tx entity.Transaction) (*asynq.Task, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(TypeLedgerAppend, payload), nil
}

// NewLedgerAppendHandler дописывает сделку из задачи в журнал. Журнал
// идемпотентен по id, поэтому повторная доставка безопасна.
func NewLedgerAppendHandler(ledger LedgerAppender) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		var tx entity.Transaction
		if err := json.Unmarshal(task.Payload(), &tx); err != nil {
			return fmt.Errorf("json.Unmarshal: %v: %w", err, asynq.SkipRetry)
		}

		if tx.ID == "" {
			return fmt.Errorf("transaction without id: %w", asynq.SkipRetry)
		}

		if err := ledger.Append(ctx, tx); err != nil {
			return fmt.Errorf("ledger.Append: %w", err)
		}

		logger(ctx).Info("ledger append redelivered", logx.FieldTxID, tx.ID, logx.FieldItem, tx.Item)

		return nil
	}
}
