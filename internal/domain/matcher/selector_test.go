package matcher

import (
	"testing"

	"github.com/olbb/expense-console-backend/internal/domain/expense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBestMatch_PerfectCandidate(t *testing.T) {
	// Arrange
	m := NewMatcher(DefaultConfig())
	item := makeItem("Delta Airlines", 642.87, "USD", "2025-04-25")
	pool := []*expense.Transaction{
		makeTransaction("tx1", "Office Depot", 85.32, "2025-04-22"),
		makeTransaction("tx2", "Delta Airlines", 642.87, "2025-04-25"),
	}

	// Act
	best := m.FindBestMatch(item, 642.87, pool, nil)

	// Assert
	require.NotNil(t, best)
	assert.Equal(t, "tx2", best.TransactionID)
	assert.Equal(t, 100, best.Score)
}

func TestFindBestMatch_BelowThreshold(t *testing.T) {
	// Arrange - unrelated transaction scores 15 (date only)
	m := NewMatcher(DefaultConfig())
	item := makeItem("Starbucks", 15.47, "USD", "2025-04-21")
	pool := []*expense.Transaction{
		makeTransaction("tx1", "Office Depot", 85.32, "2025-04-22"),
	}

	// Act
	best := m.FindBestMatch(item, 15.47, pool, nil)

	// Assert - never auto-match below the minimum score
	assert.Nil(t, best)
}

func TestFindBestMatch_SkipsClaimedTransactions(t *testing.T) {
	// Arrange - the perfect candidate is already claimed by another item
	m := NewMatcher(DefaultConfig())
	item := makeItem("Delta Airlines", 642.87, "USD", "2025-04-25")
	pool := []*expense.Transaction{
		makeTransaction("tx1", "Delta Airlines", 642.87, "2025-04-25"),
		makeTransaction("tx2", "Delta Airlines", 642.00, "2025-04-26"),
	}
	currentMatches := map[string]string{"other-item": "tx1"}

	// Act
	best := m.FindBestMatch(item, 642.87, pool, currentMatches)

	// Assert - falls through to the runner-up
	require.NotNil(t, best)
	assert.Equal(t, "tx2", best.TransactionID)
}

func TestFindBestMatch_TieGoesToFirstEncountered(t *testing.T) {
	// Arrange - two identical candidates
	m := NewMatcher(DefaultConfig())
	item := makeItem("Uber", 38.75, "USD", "2025-05-24")
	pool := []*expense.Transaction{
		makeTransaction("tx1", "Uber", 38.75, "2025-05-24"),
		makeTransaction("tx2", "Uber", 38.75, "2025-05-24"),
	}

	// Act
	best := m.FindBestMatch(item, 38.75, pool, nil)

	// Assert - stable with respect to pool order
	require.NotNil(t, best)
	assert.Equal(t, "tx1", best.TransactionID)
}

func TestFindBestMatch_ThresholdGate(t *testing.T) {
	// No returned candidate may score below the minimum.
	m := NewMatcher(DefaultConfig())
	item := makeItem("Hilton Hotels", 389.54, "USD", "2025-05-24")
	pool := []*expense.Transaction{
		makeTransaction("tx1", "Office Depot", 85.32, "2025-05-22"),
		makeTransaction("tx2", "Starbucks", 15.47, "2025-05-21"),
		makeTransaction("tx3", "Hilton Hotels", 389.54, "2025-05-24"),
	}

	best := m.FindBestMatch(item, 389.54, pool, nil)

	require.NotNil(t, best)
	assert.GreaterOrEqual(t, best.Score, DefaultConfig().MinScore)
	assert.Equal(t, "tx3", best.TransactionID)
}

func TestFindBestMatch_EmptyPool(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	item := makeItem("Uber", 38.75, "USD", "2025-05-24")

	assert.Nil(t, m.FindBestMatch(item, 38.75, nil, nil))
	assert.Nil(t, m.FindBestMatch(nil, 0, nil, nil))
}

func TestFindBestMatch_DoesNotMutateInputs(t *testing.T) {
	// Arrange
	m := NewMatcher(DefaultConfig())
	item := makeItem("Uber", 38.75, "USD", "2025-05-24")
	pool := []*expense.Transaction{
		makeTransaction("tx1", "Uber", 38.75, "2025-05-24"),
	}
	currentMatches := map[string]string{"other": "tx9"}

	// Act
	_ = m.FindBestMatch(item, 38.75, pool, currentMatches)

	// Assert
	assert.Equal(t, expense.TransactionUnmatched, pool[0].Status)
	assert.Len(t, currentMatches, 1)
	assert.Equal(t, "tx9", currentMatches["other"])
}
