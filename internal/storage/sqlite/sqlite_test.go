package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/expenseflow/internal/models"
	"github.com/mmynk/expenseflow/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, name string) *models.User {
	t.Helper()
	u := models.NewUser(name+"@example.com", name, "hash")
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return u
}

func newExpense(uploader, parent string, shares ...models.Share) *models.Expense {
	return &models.Expense{
		Name:       "Dinner",
		Category:   models.CategoryFood,
		UploaderID: uploader,
		ParentID:   parent,
		Items: []models.Item{
			{Name: "Pizza", Quantity: 2, Price: decimal.RequireFromString("12.50"), Shares: shares},
			{Name: "Water", Quantity: 1, Price: decimal.RequireFromString("3"), Shares: []models.Share{
				{ParticipantID: uploader, Proportion: 1, Status: models.StatusPaid},
			}},
		},
	}
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")

	t.Run("users by email and id", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != alice.ID || got.DisplayName != "alice" {
			t.Errorf("unexpected user %+v", got)
		}

		if _, err := store.GetUserByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		dup := models.NewUser("alice@example.com", "Alice 2", "hash")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("expected duplicate email to fail")
		}
	})

	t.Run("CreateExpense assigns IDs and keeps order", func(t *testing.T) {
		e := newExpense(alice.ID, alice.ID,
			models.Share{ParticipantID: bob.ID, Proportion: 0.5, Status: models.StatusRequested},
			models.Share{ParticipantID: alice.ID, Proportion: 0.5, Status: models.StatusPaid},
		)
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if e.ID == "" || e.Items[0].ID == "" {
			t.Fatal("expected IDs to be generated")
		}
		if e.CreatedAt == 0 || e.ExpenseDate != e.CreatedAt {
			t.Errorf("expected timestamps to default, got created=%d date=%d", e.CreatedAt, e.ExpenseDate)
		}

		got, err := store.GetExpense(ctx, e.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.ParentKind != models.EntityKindUser {
			t.Errorf("expected parent kind user, got %s", got.ParentKind)
		}
		if len(got.Items) != 2 || got.Items[0].Name != "Pizza" || got.Items[1].Name != "Water" {
			t.Fatalf("unexpected items %+v", got.Items)
		}
		if !got.Items[0].Price.Equal(decimal.RequireFromString("12.5")) {
			t.Errorf("expected price 12.5, got %s", got.Items[0].Price)
		}
		shares := got.Items[0].Shares
		if len(shares) != 2 || shares[0].ParticipantID != bob.ID || shares[1].ParticipantID != alice.ID {
			t.Errorf("share order not preserved: %+v", shares)
		}
	})

	t.Run("GetExpense missing", func(t *testing.T) {
		if _, err := store.GetExpense(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SetParticipantStatus updates every share of the participant", func(t *testing.T) {
		e := newExpense(bob.ID, bob.ID,
			models.Share{ParticipantID: alice.ID, Proportion: 1, Status: models.StatusRequested},
		)
		e.Items[1].Shares = []models.Share{{ParticipantID: alice.ID, Proportion: 1, Status: models.StatusRequested}}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		var seen *models.Expense
		check := func(current *models.Expense) error {
			seen = current
			return nil
		}
		if err := store.SetParticipantStatus(ctx, e.ID, alice.ID, check, models.StatusAccepted); err != nil {
			t.Fatalf("SetParticipantStatus failed: %v", err)
		}
		if seen == nil || seen.ID != e.ID {
			t.Fatal("expected check to see the current expense")
		}

		got, _ := store.GetExpense(ctx, e.ID)
		for _, s := range got.Shares() {
			if s.Status != models.StatusAccepted {
				t.Errorf("expected accepted, got %s", s.Status)
			}
		}
	})

	t.Run("failing check aborts the write", func(t *testing.T) {
		e := newExpense(alice.ID, alice.ID,
			models.Share{ParticipantID: bob.ID, Proportion: 1, Status: models.StatusRequested},
		)
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		errDenied := errors.New("denied")
		deny := func(*models.Expense) error { return errDenied }

		if err := store.SetParticipantStatus(ctx, e.ID, bob.ID, deny, models.StatusAccepted); !errors.Is(err, errDenied) {
			t.Errorf("expected check error, got %v", err)
		}
		if err := store.ReplaceExpense(ctx, e.ID, deny, &models.Expense{Name: "x"}); !errors.Is(err, errDenied) {
			t.Errorf("expected check error, got %v", err)
		}
		if err := store.DeleteExpense(ctx, e.ID, deny); !errors.Is(err, errDenied) {
			t.Errorf("expected check error, got %v", err)
		}

		got, err := store.GetExpense(ctx, e.ID)
		if err != nil {
			t.Fatalf("expense should survive: %v", err)
		}
		if got.Name != "Dinner" || got.Items[0].Shares[0].Status != models.StatusRequested {
			t.Errorf("expense was modified: %+v", got)
		}
	})

	t.Run("ReplaceExpense discards old items", func(t *testing.T) {
		e := newExpense(alice.ID, alice.ID,
			models.Share{ParticipantID: bob.ID, Proportion: 1, Status: models.StatusAccepted},
		)
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		replacement := &models.Expense{
			Name:       "Brunch",
			Category:   models.CategoryFood,
			UploaderID: bob.ID, // ignored
			Items: []models.Item{{
				Name: "Eggs", Quantity: 1, Price: decimal.NewFromInt(8),
				Shares: []models.Share{{ParticipantID: bob.ID, Proportion: 1, Status: models.StatusRequested}},
			}},
		}
		if err := store.ReplaceExpense(ctx, e.ID, nil, replacement); err != nil {
			t.Fatalf("ReplaceExpense failed: %v", err)
		}

		got, _ := store.GetExpense(ctx, e.ID)
		if got.Name != "Brunch" || got.UploaderID != alice.ID || got.ExpenseDate != e.ExpenseDate {
			t.Errorf("unexpected fields after replace: %+v", got)
		}
		if len(got.Items) != 1 || got.Items[0].Name != "Eggs" {
			t.Fatalf("expected items to be replaced, got %+v", got.Items)
		}
		if got.Items[0].Shares[0].Status != models.StatusRequested {
			t.Errorf("expected fresh share status, got %s", got.Items[0].Shares[0].Status)
		}
	})

	t.Run("DeleteExpense cascades", func(t *testing.T) {
		e := newExpense(alice.ID, alice.ID,
			models.Share{ParticipantID: alice.ID, Proportion: 1, Status: models.StatusPaid},
		)
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, e.ID, nil); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}

		var n int
		if err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expense_items WHERE expense_id = ?", e.ID).Scan(&n); err != nil {
			t.Fatal(err)
		}
		if n != 0 {
			t.Errorf("expected items to be deleted, found %d", n)
		}
		if err := store.DeleteExpense(ctx, e.ID, nil); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	carol := createUser(t, store, "carol")

	group := &models.Group{
		Name:    "Roommates",
		Members: []models.GroupMember{{UserID: alice.ID, Role: models.GroupRoleAdmin}},
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if err := store.AddGroupMember(ctx, group.ID, models.GroupMember{UserID: bob.ID, Role: models.GroupRoleMember}); err != nil {
		t.Fatalf("AddGroupMember failed: %v", err)
	}
	if err := store.AddGroupMember(ctx, group.ID, models.GroupMember{UserID: "ghost", Role: models.GroupRoleMember}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}

	got, err := store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if !got.HasMember(alice.ID) || !got.HasMember(bob.ID) || got.HasMember(carol.ID) {
		t.Errorf("unexpected members %+v", got.Members)
	}

	groups, err := store.ListGroupsForUser(ctx, bob.ID)
	if err != nil || len(groups) != 1 || groups[0].ID != group.ID {
		t.Errorf("ListGroupsForUser = %v, %v", groups, err)
	}

	entity, err := store.GetEntity(ctx, group.ID)
	if err != nil || entity.EntityKind() != models.EntityKindGroup {
		t.Errorf("GetEntity(group) = %v, %v", entity, err)
	}
	entity, err = store.GetEntity(ctx, carol.ID)
	if err != nil || entity.EntityKind() != models.EntityKindUser || entity.EntityID() != carol.ID {
		t.Errorf("GetEntity(user) = %v, %v", entity, err)
	}
	if _, err := store.GetEntity(ctx, "nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	e := newExpense(alice.ID, group.ID,
		models.Share{ParticipantID: bob.ID, Proportion: 1, Status: models.StatusRequested},
	)
	if err := store.CreateExpense(ctx, e); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	owned, err := store.ListExpensesByParent(ctx, group.ID)
	if err != nil || len(owned) != 1 || owned[0].ParentKind != models.EntityKindGroup {
		t.Errorf("ListExpensesByParent = %v, %v", owned, err)
	}
	uploaded, err := store.ListExpensesByUploader(ctx, alice.ID)
	if err != nil || len(uploaded) != 1 {
		t.Errorf("ListExpensesByUploader = %v, %v", uploaded, err)
	}
}

// TestSQLiteStore_ConcurrentStatusChecks runs read-check-write cycles in parallel.
// Each check allows the write only while the share is still requested, so exactly
// one writer may win.
func TestSQLiteStore_ConcurrentStatusChecks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	e := newExpense(alice.ID, alice.ID,
		models.Share{ParticipantID: bob.ID, Proportion: 1, Status: models.StatusRequested},
	)
	if err := store.CreateExpense(ctx, e); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	errStale := errors.New("stale")
	check := func(current *models.Expense) error {
		if current.Items[0].Shares[0].Status != models.StatusRequested {
			return errStale
		}
		return nil
	}

	const writers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.SetParticipantStatus(ctx, e.ID, bob.ID, check, models.StatusAccepted)
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else if !errors.Is(err, errStale) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("expected exactly one writer to win, got %d", wins)
	}
}
