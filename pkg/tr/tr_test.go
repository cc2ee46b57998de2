package tr

import (
	"context"
	"errors"
	"testing"

	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/jackc/pgx/v5"
)

type fakeTx struct {
	pgx.Tx
}

type fakeQuerier struct {
	Querier
}

func TestQuerierFromCtx(t *testing.T) {
	pool := &fakeQuerier{}

	if got := QuerierFromCtx(context.Background(), pool); got != Querier(pool) {
		t.Fatalf("without tx the pool must be used")
	}

	tx := &fakeTx{}
	ctx := context.WithValue(context.Background(), txKey{}, pgx.Tx(tx))
	if got := QuerierFromCtx(ctx, pool); got != Querier(tx) {
		t.Fatalf("tx from context must win over the pool")
	}
}

func TestTxFromCtxMissing(t *testing.T) {
	if _, err := TxFromCtx(context.Background()); !errors.Is(err, e.ErrTransactionNotFound) {
		t.Fatalf("want ErrTransactionNotFound, got %v", err)
	}
}

func TestDoJoinsOuterTransaction(t *testing.T) {
	// без БД: вложенный вызов не должен открывать новую транзакцию
	m := NewManager(nil)
	tx := &fakeTx{}
	ctx := context.WithValue(context.Background(), txKey{}, pgx.Tx(tx))

	var seen pgx.Tx
	err := m.Do(ctx, func(ctx context.Context) error {
		seen, _ = TxFromCtx(ctx)
		return nil
	})
	if err != nil || seen != pgx.Tx(tx) {
		t.Fatalf("nested Do must reuse the outer tx, err %v", err)
	}

	boom := errors.New("boom")
	if err := m.Do(ctx, func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("fn error must be returned as is, got %v", err)
	}
}
