package service

import (
	"context"
	"errors"
	"testing"

	"github.com/olbb/expense-console-backend/internal/adapters/cardfeed"
	"github.com/olbb/expense-console-backend/internal/domain/currency"
	"github.com/olbb/expense-console-backend/internal/domain/expense"
	"github.com/olbb/expense-console-backend/internal/domain/matcher"
	"github.com/olbb/expense-console-backend/internal/domain/reconcile"
	"github.com/olbb/expense-console-backend/internal/infrastructure/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*ReportService, *store.Memory) {
	t.Helper()

	repo := store.NewMemorySeeded()
	sync := NewSyncService(repo, cardfeed.NewStaticProvider(), nil)
	_, err := sync.Refresh(context.Background())
	require.NoError(t, err)

	svc := NewReportService(repo, currency.NewConverter(nil, nil), matcher.NewMatcher(matcher.DefaultConfig()), nil)
	return svc, repo
}

func deltaItem() expense.Item {
	return expense.Item{
		Date:        "2025-05-25",
		Vendor:      "Delta Airlines",
		Total:       642.87,
		Currency:    "USD",
		ExpenseType: "Travel",
	}
}

func TestReportService_DraftLifecycle(t *testing.T) {
	svc, _ := newTestService(t)

	draftID := svc.CreateDraft()
	item, err := svc.AddItem(draftID, deltaItem())
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)

	items, err := svc.Items(draftID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.RemoveItem(draftID, item.ID))
	items, _ = svc.Items(draftID)
	assert.Empty(t, items)
}

func TestReportService_UnknownDraft(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Items("DRAFT-nope")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	_, err = svc.AddItem("DRAFT-nope", deltaItem())
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestReportService_CandidatesAndBestMatch(t *testing.T) {
	// Arrange - the Delta expense against the seeded feed
	svc, _ := newTestService(t)
	draftID := svc.CreateDraft()
	item, err := svc.AddItem(draftID, deltaItem())
	require.NoError(t, err)

	// Act
	candidates, best, err := svc.Candidates(draftID, item.ID)

	// Assert - full unmatched pool offered, TX-54321 wins at 100
	require.NoError(t, err)
	assert.NotEmpty(t, candidates)
	require.NotNil(t, best)
	assert.Equal(t, "TX-54321", best.TransactionID)
	assert.Equal(t, 100, best.Score)
}

func TestReportService_AnchorCardRestrictsSecondItem(t *testing.T) {
	// Arrange - first item matched to TX-54321 on ****4567
	svc, _ := newTestService(t)
	draftID := svc.CreateDraft()
	first, err := svc.AddItem(draftID, deltaItem())
	require.NoError(t, err)
	_, err = svc.ConfirmMatch(draftID, first.ID, "TX-54321")
	require.NoError(t, err)

	second, err := svc.AddItem(draftID, expense.Item{
		Date: "2025-05-21", Vendor: "Starbucks", Total: 15.47, Currency: "USD", ExpenseType: "Meals",
	})
	require.NoError(t, err)

	// Act
	candidates, _, err := svc.Candidates(draftID, second.ID)

	// Assert - only ****4567 transactions remain in the pool
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		assert.Equal(t, "****4567", c.Transaction.CardNumber)
	}
}

func TestReportService_ConfirmMatch_Conflict(t *testing.T) {
	svc, _ := newTestService(t)
	draftID := svc.CreateDraft()
	first, _ := svc.AddItem(draftID, deltaItem())
	second, _ := svc.AddItem(draftID, deltaItem())

	_, err := svc.ConfirmMatch(draftID, first.ID, "TX-54321")
	require.NoError(t, err)

	_, err = svc.ConfirmMatch(draftID, second.ID, "TX-54321")
	assert.ErrorIs(t, err, reconcile.ErrTransactionClaimed)
}

func TestReportService_Submit(t *testing.T) {
	// Arrange
	svc, repo := newTestService(t)
	draftID := svc.CreateDraft()
	item, _ := svc.AddItem(draftID, deltaItem())
	_, err := svc.ConfirmMatch(draftID, item.ID, "TX-54321")
	require.NoError(t, err)

	// Act
	report, err := svc.Submit(draftID, SubmitRequest{
		Title:    "May travel",
		CostCode: "BUD-001",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, store.ReportSubmitted, report.Status)
	assert.Equal(t, "USD", report.Currency)
	assert.Equal(t, 642.87, report.TotalAmount)
	require.NotNil(t, report.CardInfo)
	assert.Equal(t, "****4567", report.CardInfo.CardNumber)
	assert.Equal(t, "Sarah Johnson", report.CardInfo.AccountName)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "TX-54321", report.Items[0].MatchedTransactionID)

	// Stored, and the draft is gone.
	_, ok := repo.Report(report.ID)
	assert.True(t, ok)
	_, err = svc.Items(draftID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	// The matched transaction stays matched after submission.
	tx, _ := repo.Transaction("TX-54321")
	assert.Equal(t, expense.TransactionMatched, tx.Status)
}

func TestReportService_Submit_ConvertsCurrency(t *testing.T) {
	svc, _ := newTestService(t)
	draftID := svc.CreateDraft()
	_, err := svc.AddItem(draftID, expense.Item{
		Date: "2025-05-20", Vendor: "Le Bistro", Total: 100, Currency: "EUR", ExpenseType: "Meals",
	})
	require.NoError(t, err)

	report, err := svc.Submit(draftID, SubmitRequest{Title: "Paris", CostCode: "BUD-001"})

	require.NoError(t, err)
	assert.Equal(t, 109.00, report.TotalAmount)
	assert.Equal(t, 109.00, report.Items[0].AmountUSD)
}

func TestReportService_Submit_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	t.Run("missing title", func(t *testing.T) {
		draftID := svc.CreateDraft()
		_, _ = svc.AddItem(draftID, deltaItem())
		_, err := svc.Submit(draftID, SubmitRequest{CostCode: "BUD-001"})
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("missing cost code", func(t *testing.T) {
		draftID := svc.CreateDraft()
		_, _ = svc.AddItem(draftID, deltaItem())
		_, err := svc.Submit(draftID, SubmitRequest{Title: "x"})
		assert.ErrorIs(t, err, ErrCostCodeRequired)
	})

	t.Run("unknown cost code", func(t *testing.T) {
		draftID := svc.CreateDraft()
		_, _ = svc.AddItem(draftID, deltaItem())
		_, err := svc.Submit(draftID, SubmitRequest{Title: "x", CostCode: "BUD-999"})
		assert.ErrorIs(t, err, ErrCostCodeUnknown)
	})

	t.Run("empty draft", func(t *testing.T) {
		draftID := svc.CreateDraft()
		_, err := svc.Submit(draftID, SubmitRequest{Title: "x", CostCode: "BUD-001"})
		assert.ErrorIs(t, err, ErrNoItems)
	})
}

func TestReportService_Submit_MultiCardBlocked(t *testing.T) {
	// Arrange - two items arriving pre-matched on different cards
	svc, _ := newTestService(t)
	draftID := svc.CreateDraft()
	_, err := svc.AddItem(draftID, expense.Item{
		ID: "exp1", Date: "2025-05-25", Vendor: "Delta Airlines", Total: 642.87,
		Currency: "USD", MatchedTransactionID: "TX-54321", // ****4567
	})
	require.NoError(t, err)
	_, err = svc.AddItem(draftID, expense.Item{
		ID: "exp2", Date: "2025-05-19", Vendor: "Amazon", Total: 109.30,
		Currency: "USD", MatchedTransactionID: "TX-54329", // ****6789
	})
	require.NoError(t, err)

	// Act
	_, err = svc.Submit(draftID, SubmitRequest{Title: "Mixed cards", CostCode: "BUD-001"})

	// Assert - refused, draft intact
	var conflict *reconcile.CardConflictError
	require.True(t, errors.As(err, &conflict))
	assert.ElementsMatch(t, []string{"****4567", "****6789"}, conflict.CardNumbers)

	items, itemsErr := svc.Items(draftID)
	require.NoError(t, itemsErr)
	assert.Len(t, items, 2)
}

func TestReportService_ConfirmMatch_RetiresPoolReceipt(t *testing.T) {
	// Arrange - the seeded pool holds R-10049 for the Delta purchase
	svc, repo := newTestService(t)
	draftID := svc.CreateDraft()
	item, _ := svc.AddItem(draftID, deltaItem())

	// Act
	_, err := svc.ConfirmMatch(draftID, item.ID, "TX-54321")

	// Assert
	require.NoError(t, err)
	for _, r := range repo.UnmatchedReceipts() {
		assert.NotEqual(t, "R-10049", r.ID)
	}
}

func TestReportService_UndoMatch_ReturnsTransactionToPool(t *testing.T) {
	svc, repo := newTestService(t)
	draftID := svc.CreateDraft()
	item, _ := svc.AddItem(draftID, deltaItem())
	_, err := svc.ConfirmMatch(draftID, item.ID, "TX-54321")
	require.NoError(t, err)

	require.NoError(t, svc.UndoMatch(draftID, item.ID))

	tx, _ := repo.Transaction("TX-54321")
	assert.Equal(t, expense.TransactionUnmatched, tx.Status)

	// The reconstructed receipt is back in the pool.
	found := false
	for _, r := range repo.UnmatchedReceipts() {
		if r.Vendor == "Delta Airlines" && r.Amount == 642.87 {
			found = true
		}
	}
	assert.True(t, found)
}
