package fuelsync

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"localtrack/internal/config"
	"localtrack/internal/database"
	"localtrack/internal/models"
	"localtrack/internal/store"
)

func newTestSync(t *testing.T) (*Synchronizer, *store.Store) {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "sync.db")})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	st := store.New(db)
	return New(st), st
}

func ptr(f float64) *float64 { return &f }

func petrol(date string, amount, litres float64) *models.Expense {
	return &models.Expense{
		Date:     date,
		Type:     models.ExpenseTypeExpense,
		Category: models.CategoryTransport,
		Amount:   amount,
		Litres:   ptr(litres),
	}
}

func mustLink(t *testing.T, st *store.Store, expenseID uint) *models.FuelLog {
	t.Helper()
	l, err := st.FuelLogByExpense(context.Background(), expenseID)
	if err != nil {
		t.Fatalf("lookup fuel log: %v", err)
	}
	return l
}

func TestCreatePetrolExpenseCreatesMatchingFuelLog(t *testing.T) {
	sync, st := newTestSync(t)
	ctx := context.Background()

	e := petrol("2024-05-01", 202, 2)
	if err := sync.CreateExpense(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !e.IsPetrol {
		t.Fatal("expected expense to be flagged as petrol")
	}

	l := mustLink(t, st, e.ID)
	if l == nil {
		t.Fatal("expected a linked fuel log")
	}
	if l.Date != e.Date || l.Litres != 2 || l.Cost != 202 {
		t.Fatalf("fuel log does not mirror expense: %+v", l)
	}
}

func TestCreateWithoutFuelCreatesNoLog(t *testing.T) {
	sync, st := newTestSync(t)
	ctx := context.Background()

	cases := []*models.Expense{
		{Date: "2024-05-01", Type: models.ExpenseTypeExpense, Category: models.CategoryTransport, Amount: 50},
		{Date: "2024-05-01", Type: models.ExpenseTypeExpense, Category: models.CategoryTransport, Amount: 50, Litres: ptr(0)},
		{Date: "2024-05-01", Type: models.ExpenseTypeExpense, Category: models.CategoryFood, Amount: 50, Litres: ptr(3)},
	}
	for _, e := range cases {
		if err := sync.CreateExpense(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
		if e.IsPetrol || e.Litres != nil {
			t.Fatalf("expected non-petrol expense, got %+v", e)
		}
		if l := mustLink(t, st, e.ID); l != nil {
			t.Fatalf("expected no fuel log, got %+v", l)
		}
	}

	logs, err := st.ListFuelLogs(ctx, "2024-01-01", "2024-12-31")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected no fuel logs, got %d", len(logs))
	}
}

func TestUpdateStateMachine(t *testing.T) {
	sync, st := newTestSync(t)
	ctx := context.Background()

	e := petrol("2024-05-01", 101, 1)
	if err := sync.CreateExpense(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	original := mustLink(t, st, e.ID)

	// still fuel: updated in place
	if _, err := sync.UpdateExpense(ctx, e.ID, petrol("2024-05-02", 303, 3)); err != nil {
		t.Fatalf("update fuel->fuel: %v", err)
	}
	l := mustLink(t, st, e.ID)
	if l == nil || l.ID != original.ID {
		t.Fatalf("expected fuel log %d updated in place, got %+v", original.ID, l)
	}
	if l.Date != "2024-05-02" || l.Litres != 3 || l.Cost != 303 {
		t.Fatalf("fuel log not updated: %+v", l)
	}

	// now not fuel: log removed
	notFuel := &models.Expense{Date: "2024-05-02", Type: models.ExpenseTypeExpense, Category: models.CategoryTransport, Amount: 40}
	updated, err := sync.UpdateExpense(ctx, e.ID, notFuel)
	if err != nil {
		t.Fatalf("update fuel->not fuel: %v", err)
	}
	if updated.IsPetrol || updated.Litres != nil {
		t.Fatalf("expected petrol flags cleared, got %+v", updated)
	}
	if l := mustLink(t, st, e.ID); l != nil {
		t.Fatalf("expected fuel log removed, got %+v", l)
	}

	// back to fuel: a new log is created and linked
	if _, err := sync.UpdateExpense(ctx, e.ID, petrol("2024-05-03", 202, 2)); err != nil {
		t.Fatalf("update not fuel->fuel: %v", err)
	}
	l = mustLink(t, st, e.ID)
	if l == nil {
		t.Fatal("expected a new fuel log")
	}
	if l.ID == original.ID {
		t.Fatal("expected a newly created fuel log")
	}
	if l.Date != "2024-05-03" || l.Litres != 2 || l.Cost != 202 {
		t.Fatalf("new fuel log does not mirror expense: %+v", l)
	}
}

func TestUpdateDoesNotTouchSameDayUnlinkedLog(t *testing.T) {
	sync, st := newTestSync(t)
	ctx := context.Background()

	standalone := &models.FuelLog{Date: "2024-05-01", Litres: 4, Cost: 400}
	if err := st.CreateFuelLog(ctx, standalone); err != nil {
		t.Fatalf("create standalone: %v", err)
	}

	e := &models.Expense{Date: "2024-05-01", Type: models.ExpenseTypeExpense, Category: models.CategoryTransport, Amount: 30}
	if err := sync.CreateExpense(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := sync.UpdateExpense(ctx, e.ID, petrol("2024-05-01", 101, 1)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := sync.DeleteExpense(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := st.GetFuelLog(ctx, standalone.ID)
	if err != nil {
		t.Fatalf("standalone log should survive: %v", err)
	}
	if got.Litres != 4 || got.Cost != 400 {
		t.Fatalf("standalone log modified: %+v", got)
	}
}

func TestDeleteExpenseCascadesToFuelLog(t *testing.T) {
	sync, st := newTestSync(t)
	ctx := context.Background()

	e := petrol("2024-05-01", 101, 1)
	if err := sync.CreateExpense(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	l := mustLink(t, st, e.ID)

	if err := sync.DeleteExpense(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.GetFuelLog(ctx, l.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected fuel log deleted, got %v", err)
	}
	// deleting again is a no-op
	if err := sync.DeleteExpense(ctx, e.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestFailedUpdateLeavesNoPartialState(t *testing.T) {
	sync, st := newTestSync(t)
	ctx := context.Background()

	e := petrol("2024-05-01", 101, 1)
	if err := sync.CreateExpense(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := petrol("not-a-date", 303, 3)
	if _, err := sync.UpdateExpense(ctx, e.ID, bad); !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	got, err := st.GetExpense(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount != 101 || got.Date != "2024-05-01" {
		t.Fatalf("expense changed by rejected update: %+v", got)
	}
	if l := mustLink(t, st, e.ID); l == nil || l.Cost != 101 {
		t.Fatalf("fuel log changed by rejected update: %+v", l)
	}

	if _, err := sync.UpdateExpense(ctx, 999, petrol("2024-05-01", 1, 1)); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteFuelLogRefusesOwnedLog(t *testing.T) {
	sync, st := newTestSync(t)
	ctx := context.Background()

	e := petrol("2024-05-01", 101, 1)
	if err := sync.CreateExpense(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	owned := mustLink(t, st, e.ID)
	if err := sync.DeleteFuelLog(ctx, owned.ID); !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	standalone := &models.FuelLog{Date: "2024-05-01", Litres: 1, Cost: 100}
	if err := st.CreateFuelLog(ctx, standalone); err != nil {
		t.Fatalf("create standalone: %v", err)
	}
	if err := sync.DeleteFuelLog(ctx, standalone.ID); err != nil {
		t.Fatalf("delete standalone: %v", err)
	}
	if err := sync.DeleteFuelLog(ctx, standalone.ID); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestHealRemovesOrphans(t *testing.T) {
	sync, st := newTestSync(t)
	ctx := context.Background()

	e := petrol("2024-05-01", 101, 1)
	if err := sync.CreateExpense(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	l := mustLink(t, st, e.ID)

	// simulate a crash between the two deletes
	if err := st.DeleteExpense(ctx, e.ID); err != nil {
		t.Fatalf("delete expense only: %v", err)
	}

	healed, err := sync.Heal(ctx)
	if err != nil {
		t.Fatalf("heal: %v", err)
	}
	if len(healed) != 1 || healed[0].FuelLogID != l.ID || healed[0].ExpenseID != e.ID {
		t.Fatalf("unexpected heal report: %+v", healed)
	}
	if _, err := st.GetFuelLog(ctx, l.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected orphan removed, got %v", err)
	}

	healed, err = sync.Heal(ctx)
	if err != nil {
		t.Fatalf("second heal: %v", err)
	}
	if len(healed) != 0 {
		t.Fatalf("expected nothing left to heal, got %d", len(healed))
	}
}
