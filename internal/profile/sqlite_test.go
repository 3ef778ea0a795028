package profile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/angel-assistant/angel-core/internal/infrastructure/database"
	_ "github.com/angel-assistant/angel-core/migrations"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "angel.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return NewSQLiteStore(db.DB)
}

func TestSQLiteStoreFirstLoadCreatesDefaults(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	p, err := store.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !p.Preferences.HasMusicGenre("classique") {
		t.Error("first load should synthesise default preferences")
	}

	// A second load reads the persisted row.
	again, err := store.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if !again.Preferences.HasTVCategory("documentaires") {
		t.Errorf("persisted preferences = %+v", again.Preferences)
	}
}

func TestSQLiteStoreActivityRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	if _, err := store.Load(ctx, "user-1"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rec := ActivityRecord{
		Timestamp:  time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC),
		Activity:   "manger",
		Confidence: 0.92,
	}
	if err := store.SaveActivity(ctx, "user-1", rec); err != nil {
		t.Fatalf("SaveActivity() error = %v", err)
	}

	p, err := store.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(p.ActivityHistory) != 1 {
		t.Fatalf("ActivityHistory length = %d, want 1", len(p.ActivityHistory))
	}
	got := p.ActivityHistory[0]
	if got.Activity != "manger" || got.Confidence != 0.92 {
		t.Errorf("record = %+v", got)
	}
}

func TestSQLiteStoreFeedbackUpsert(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	if _, err := store.Load(ctx, "user-1"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	first := Feedback{Accepted: false, Comment: "trop fort", Timestamp: time.Now()}
	if err := store.SaveFeedback(ctx, "user-1", "batch-1", first); err != nil {
		t.Fatalf("SaveFeedback() error = %v", err)
	}

	second := Feedback{Accepted: true, Comment: "parfait", Timestamp: time.Now()}
	if err := store.SaveFeedback(ctx, "user-1", "batch-1", second); err != nil {
		t.Fatalf("SaveFeedback() upsert error = %v", err)
	}

	p, err := store.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	fb, ok := p.FeedbackHistory["batch-1"]
	if !ok {
		t.Fatal("feedback missing after save")
	}
	if !fb.Accepted || fb.Comment != "parfait" {
		t.Errorf("feedback = %+v, want the upserted values", fb)
	}
}

func TestSQLiteStoreEmptyUserID(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	if _, err := store.Load(ctx, ""); err != ErrInvalidUserID {
		t.Errorf("Load error = %v, want ErrInvalidUserID", err)
	}
	if err := store.SaveActivity(ctx, "", ActivityRecord{}); err != ErrInvalidUserID {
		t.Errorf("SaveActivity error = %v, want ErrInvalidUserID", err)
	}
	if err := store.SaveFeedback(ctx, "", "b", Feedback{}); err != ErrInvalidUserID {
		t.Errorf("SaveFeedback error = %v, want ErrInvalidUserID", err)
	}
}
