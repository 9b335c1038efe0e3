package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/amqp"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

type fakePersister struct {
	transactions []core.Transaction
	loadErr      error
}

func (p *fakePersister) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	return p.transactions, p.loadErr
}

func (p *fakePersister) SaveTransactions(ctx context.Context, ts []core.Transaction) error {
	p.transactions = ts
	return nil
}

func (p *fakePersister) LoadCategories(ctx context.Context) ([]string, error) { return nil, nil }

func (p *fakePersister) SaveCategories(ctx context.Context, cs []string) error { return nil }

func (p *fakePersister) Close() error { return nil }

type fakePusher struct {
	pushes  int
	lastLen int
	err     error
}

func (f *fakePusher) Push(ctx context.Context, ts []core.Transaction) error {
	f.pushes++
	f.lastLen = len(ts)
	return f.err
}

func TestMirrorOncePushesSnapshot(t *testing.T) {
	p := &fakePersister{transactions: []core.Transaction{
		{ID: core.NewID(), Date: core.NewDate(2024, 1, 1), Description: "x",
			Amount: core.Money{Cents: 100}, Kind: core.Expense, Category: core.CategoryFixed},
	}}
	pusher := &fakePusher{}
	w := NewMirrorWorker(p, pusher, time.Minute)

	if err := w.MirrorOnce(context.Background()); err != nil {
		t.Fatalf("mirror: %v", err)
	}
	if pusher.pushes != 1 || pusher.lastLen != 1 {
		t.Errorf("pusher saw %d pushes of %d rows", pusher.pushes, pusher.lastLen)
	}
}

func TestMirrorOncePropagatesErrors(t *testing.T) {
	w := NewMirrorWorker(&fakePersister{loadErr: errors.New("disk gone")}, &fakePusher{}, time.Minute)
	if err := w.MirrorOnce(context.Background()); err == nil {
		t.Error("expected load error")
	}

	w = NewMirrorWorker(&fakePersister{}, &fakePusher{err: errors.New("api down")}, time.Minute)
	if err := w.MirrorOnce(context.Background()); err == nil {
		t.Error("expected push error")
	}
}

func TestHandleLedgerEventCoalesces(t *testing.T) {
	w := NewMirrorWorker(&fakePersister{}, &fakePusher{}, time.Minute)

	for i := 0; i < 5; i++ {
		if err := w.HandleLedgerEvent(&amqp.LedgerEventMessage{Event: amqp.EventTransactionCreated}); err != nil {
			t.Fatalf("handle event: %v", err)
		}
	}
	if len(w.trigger) != 1 {
		t.Errorf("trigger queue length = %d, want 1 (coalesced)", len(w.trigger))
	}
}
