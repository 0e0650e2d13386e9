package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"localtrack/internal/config"
	"localtrack/internal/database"
	"localtrack/internal/models"
	"localtrack/internal/store"
)

func newTestService(t *testing.T, passphrase string) (*Service, *store.Store) {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "ledger.db")})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	st := store.New(db)
	return New(st, filepath.Join(t.TempDir(), "backups"), passphrase), st
}

func seed(t *testing.T, st *store.Store) {
	t.Helper()
	ctx := context.Background()

	litres := 2.0
	petrol := &models.Expense{Date: "2024-05-01", Type: models.ExpenseTypeExpense, Category: models.CategoryTransport, Amount: 203, IsPetrol: true, Litres: &litres}
	if err := st.CreateExpense(ctx, petrol); err != nil {
		t.Fatal(err)
	}
	if err := st.CreateFuelLog(ctx, &models.FuelLog{Date: "2024-05-01", Litres: 2, Cost: 203, ExpenseID: &petrol.ID}); err != nil {
		t.Fatal(err)
	}
	loan := &models.Loan{Name: "Bike", Type: models.LoanTypeTakenInterest, Principal: 1000, Rate: 12, StartDate: "2024-01-01"}
	if err := st.CreateLoan(ctx, loan); err != nil {
		t.Fatal(err)
	}
	if err := st.AddLoanPayment(ctx, &models.LoanPayment{LoanID: loan.ID, Date: "2024-02-01", Amount: 100}); err != nil {
		t.Fatal(err)
	}
	if err := st.UpsertDelivery(ctx, &models.Delivery{Date: "2024-05-01", KmDriven: 40, CashEarnings: 500}); err != nil {
		t.Fatal(err)
	}
}

func TestCreateListRestore(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, "s3cret")
	seed(t, st)

	info, err := svc.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(info.Name, "backup-") || !strings.HasSuffix(info.Name, ".bin") {
		t.Fatalf("unexpected name %q", info.Name)
	}

	list, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != info.Name {
		t.Fatalf("unexpected list %+v", list)
	}

	// mutate after the backup; restore must bring the old state back
	if err := st.UpsertDelivery(ctx, &models.Delivery{Date: "2024-05-02", KmDriven: 1}); err != nil {
		t.Fatal(err)
	}
	before, _ := st.Snapshot(ctx)
	if err := st.DeleteExpense(ctx, before.Expenses[0].ID); err != nil {
		t.Fatal(err)
	}

	path, err := svc.Path(info.Name)
	if err != nil {
		t.Fatal(err)
	}
	counts, err := svc.Restore(ctx, path)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	want := Counts{Expenses: 1, FuelLogs: 1, Loans: 1, LoanPayments: 1, Deliveries: 1}
	if *counts != want {
		t.Fatalf("counts = %+v, want %+v", *counts, want)
	}

	after, err := st.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Deliveries) != 1 || after.Deliveries[0].Date != "2024-05-01" {
		t.Fatalf("unexpected deliveries after restore: %+v", after.Deliveries)
	}
	if len(after.FuelLogs) != 1 || after.FuelLogs[0].ExpenseID == nil || *after.FuelLogs[0].ExpenseID != after.Expenses[0].ID {
		t.Fatalf("fuel log link lost: %+v / %+v", after.FuelLogs, after.Expenses)
	}
}

func TestRestoreWrongPassphraseChangesNothing(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, "right")
	seed(t, st)

	info, err := svc.Create(ctx)
	if err != nil {
		t.Fatal(err)
	}
	path, _ := svc.Path(info.Name)

	other := New(st, svc.dir, "wrong")
	if _, err := other.Restore(ctx, path); err == nil {
		t.Fatal("expected restore with wrong passphrase to fail")
	}

	snap, err := st.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Expenses) != 1 || len(snap.Loans) != 1 {
		t.Fatalf("ledger changed after failed restore: %+v", snap)
	}
}

func TestListMissingDirAndForeignFiles(t *testing.T) {
	svc, _ := newTestService(t, "x")

	list, err := svc.List()
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v, %v", list, err)
	}

	if err := os.MkdirAll(svc.dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(svc.dir, "notes.txt"), []byte("hi"), 0o600); err != nil {
		t.Fatal(err)
	}
	list, err = svc.List()
	if err != nil || len(list) != 0 {
		t.Fatalf("expected foreign files to be ignored, got %v, %v", list, err)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	svc, _ := newTestService(t, "x")

	for _, name := range []string{"../backup-x.bin", "backup-../../etc.bin", "ledger.db", ""} {
		if _, err := svc.Path(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Path(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}
