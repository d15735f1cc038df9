package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/archive"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"kv", "llm_requests", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.KV().Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.KV().Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestKVMedium_GetSetRemove(t *testing.T) {
	kv := openTestStore(t).KV()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", "one"))
	require.NoError(t, kv.Set(ctx, "k", "two"))
	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)

	require.NoError(t, kv.Remove(ctx, "k"))
	require.NoError(t, kv.Remove(ctx, "k"))
	_, ok, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVMedium_QuotaWrapsSentinel(t *testing.T) {
	kv := openTestStore(t).KV(WithMaxValueBytes(8))
	err := kv.Set(context.Background(), "k", strings.Repeat("x", 9))
	require.Error(t, err)
	assert.True(t, errors.Is(err, archive.ErrQuotaExceeded))
}

func TestKVMedium_BacksArchive(t *testing.T) {
	s := openTestStore(t)
	a := archive.New(s.KV())
	ctx := context.Background()

	base := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		r := gift.DiagnosticResult{
			ID:          string(rune('a' + i)),
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
			Mode:        gift.ModeVibeFit,
			Service:     gift.Service{Category: "ストレージ", ServiceName: "Amazon S3"},
			Catchphrase: "頼れる保管庫",
			AILetter:    "letter",
			NextActions: []string{"1", "2", "3"},
		}
		require.NoError(t, a.Save(ctx, r))
	}

	all := a.GetAll(ctx, archive.OrderDesc)
	require.Len(t, all, 9)
	assert.Equal(t, "j", all[0].ID)
	assert.Equal(t, "b", all[8].ID)
	assert.True(t, all[0].Timestamp.Equal(base.Add(9*time.Hour)))
}

func TestKVMedium_ArchiveQuota(t *testing.T) {
	s := openTestStore(t)
	a := archive.New(s.KV(WithMaxValueBytes(64)))

	err := a.Save(context.Background(), gift.DiagnosticResult{
		ID:          "x",
		Mode:        gift.ModeAdventure,
		Service:     gift.Service{Category: "分析", ServiceName: "Amazon Athena"},
		Catchphrase: "探検家",
		NextActions: []string{"1", "2", "3"},
	})
	assert.True(t, apperr.IsKind(err, apperr.StorageQuotaExceeded), "got %v", err)
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "diagnostic", InputTokens: 1200, OutputTokens: 400, LatencyMs: 900, Success: true},
		{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "diagnostic", InputTokens: 800, OutputTokens: 200, LatencyMs: 1100, Success: true},
		{Provider: "openai", Model: "gpt-image-1", Purpose: "giftcard", LatencyMs: 5000, Success: false, ErrorMessage: "content filter"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "giftcard", got[0].Purpose, "newest first")
	assert.Greater(t, got[0].Sequence, got[1].Sequence)

	got, err = repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "diagnostic", Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 800, got[0].InputTokens)

	e, err := repo.GetLLMEvent(ctx, got[0].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "claude-sonnet-4-5", e.Model)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEventRepo_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "m1", Purpose: "diagnostic", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Model: "m1", Purpose: "diagnostic", InputTokens: 20, OutputTokens: 5, LatencyMs: 300, Success: true},
		{Model: "m2", Purpose: "giftcard", InputTokens: 0, OutputTokens: 0, LatencyMs: 50, Success: true},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "diagnostic", Calls: 2, InputTokens: 30, OutputTokens: 10, AvgLatencyMs: 200}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, ModelUsage{Model: "m2", Calls: 1}, byModel[1])
}

func TestWaitForChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	started := make(chan struct{})
	go func() {
		close(started)
		done <- WaitForChange(ctx, path)
	}()
	<-started
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, s.KV().Set(context.Background(), "k", "v"))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("no change observed")
	}
}

func TestWaitForChange_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := WaitForChange(ctx, filepath.Join(t.TempDir(), "x.db"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsDBFile(t *testing.T) {
	assert.True(t, isDBFile("/d/identitygift.db", "identitygift.db"))
	assert.True(t, isDBFile("/d/identitygift.db-wal", "identitygift.db"))
	assert.False(t, isDBFile("/d/identitygift.log", "identitygift.db"))
}
