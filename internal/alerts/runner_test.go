package alerts

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"pricewatch/internal/errors"
	"pricewatch/internal/models"
)

// fakeProvider returns a fixed snapshot map or a fixed error.
type fakeProvider struct {
	snaps map[string]models.Snapshot
	err   error

	gotSymbols []string
	calls      int
}

func (f *fakeProvider) Snapshots(ctx context.Context, symbols []string) (map[string]models.Snapshot, error) {
	f.calls++
	f.gotSymbols = symbols
	if f.err != nil {
		return nil, f.err
	}
	return f.snaps, nil
}

func newRunnerForTest(watchlist []string, ruleSet models.Rules, provider *fakeProvider, st *memStore, n *recordingNotifier) *Runner {
	eval := newEvaluatorForTest(st, n)
	return NewRunner(watchlist, ruleSet, provider, eval, zerolog.Nop())
}

func TestRunEndToEnd(t *testing.T) {
	provider := &fakeProvider{snaps: map[string]models.Snapshot{
		"AAPL": models.PriceWithPrevClose(165, 180),
		"MSFT": models.PriceOnly(400),
	}}
	st := newMemStore()
	n := &recordingNotifier{}
	r := newRunnerForTest([]string{"AAPL", "MSFT", "TSLA"},
		models.Rules{"AAPL": {Below: fp(170)}}, provider, st, n)

	summary, err := r.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if provider.calls != 1 {
		t.Errorf("snapshot fetch called %d times, want one batched call", provider.calls)
	}
	if summary.Symbols != 3 {
		t.Errorf("symbols = %d, want 3", summary.Symbols)
	}
	if summary.Sent != 1 {
		t.Errorf("sent = %d, want 1", summary.Sent)
	}
	if len(summary.Details) != 3 {
		t.Fatalf("details = %d entries, want 3", len(summary.Details))
	}

	bynote := map[string]string{}
	for _, d := range summary.Details {
		bynote[d.Symbol] = d.Note
	}
	if bynote["TSLA"] != NoteNoSnapshot {
		t.Errorf("TSLA note = %q, want %q", bynote["TSLA"], NoteNoSnapshot)
	}
	if bynote["AAPL"] != "" || bynote["MSFT"] != "" {
		t.Errorf("unexpected notes: %v", bynote)
	}
}

func TestRunSymbolOverrideNormalized(t *testing.T) {
	provider := &fakeProvider{snaps: map[string]models.Snapshot{}}
	r := newRunnerForTest([]string{"AAPL"}, models.Rules{}, provider, newMemStore(), &recordingNotifier{})

	summary, err := r.Run(context.Background(), RunOptions{Symbols: []string{" tsla ", "", "msft"}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Symbols != 2 {
		t.Errorf("symbols = %d, want 2 (override, empties dropped)", summary.Symbols)
	}
	if len(provider.gotSymbols) != 2 || provider.gotSymbols[0] != "TSLA" || provider.gotSymbols[1] != "MSFT" {
		t.Errorf("fetched symbols = %v, want [TSLA MSFT]", provider.gotSymbols)
	}
}

func TestRunSnapshotFetchFailureAbortsCycle(t *testing.T) {
	provider := &fakeProvider{err: errors.NewUpstreamError("alpaca snapshots", 503, "down", nil)}
	st := newMemStore()
	r := newRunnerForTest([]string{"AAPL"}, models.Rules{}, provider, st, &recordingNotifier{})

	_, err := r.Run(context.Background(), RunOptions{})
	if err == nil {
		t.Fatal("expected cycle to abort on snapshot fetch failure")
	}
	if st.puts != 0 {
		t.Error("state written despite aborted cycle")
	}
}

func TestRunDeliveryFailureIsPerSymbol(t *testing.T) {
	provider := &fakeProvider{snaps: map[string]models.Snapshot{
		"AAPL": models.PriceOnly(165),
		"TSLA": models.PriceOnly(150),
	}}
	st := newMemStore()
	// First send fails, later sends succeed.
	n := &recordingNotifier{failAt: 1}

	r := newRunnerForTest([]string{"AAPL", "TSLA"},
		models.Rules{"AAPL": {Below: fp(170)}, "TSLA": {Below: fp(160)}}, provider, st, n)

	summary, err := r.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	notes := map[string]string{}
	for _, d := range summary.Details {
		notes[d.Symbol] = d.Note
	}
	if notes["AAPL"] != NoteError {
		t.Errorf("AAPL note = %q, want %q", notes["AAPL"], NoteError)
	}
	if _, ok := st.states["AAPL"]; ok {
		t.Error("failed symbol's state was persisted")
	}
	if _, ok := st.states["TSLA"]; !ok {
		t.Error("later symbol did not process after an earlier symbol failed")
	}
}

func TestRunEmptyWatchlist(t *testing.T) {
	provider := &fakeProvider{}
	r := newRunnerForTest(nil, models.Rules{}, provider, newMemStore(), &recordingNotifier{})

	summary, err := r.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Symbols != 0 || summary.Sent != 0 {
		t.Errorf("summary = %+v, want empty", summary)
	}
	if provider.calls != 0 {
		t.Error("snapshot fetch called for an empty watchlist")
	}
}
