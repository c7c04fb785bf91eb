// Package service wires the matching core, the in-memory stores, and the
// card feed into the operations the HTTP API exposes: composing draft
// reports, reconciling their items against card transactions, submitting
// them, refreshing the ledger, and aggregating dashboards.
package service

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/olbb/expense-console-backend/internal/domain/currency"
	"github.com/olbb/expense-console-backend/internal/domain/expense"
	"github.com/olbb/expense-console-backend/internal/domain/matcher"
	"github.com/olbb/expense-console-backend/internal/domain/reconcile"
	"github.com/olbb/expense-console-backend/internal/infrastructure/store"
)

// Candidate is one scored transaction offered for an expense item.
type Candidate struct {
	Transaction *expense.Transaction `json:"transaction"`
	Score       int                  `json:"score"`
}

// SubmitRequest carries the report header fields.
type SubmitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CostCode    string `json:"costCode"`
}

// ReportService manages draft reports and their reconciliation sessions.
// Each draft owns one session; session operations serialize internally,
// so concurrent callers cannot break the one-transaction-per-expense
// invariant.
type ReportService struct {
	repo      store.Repository
	converter *currency.Converter
	matcher   *matcher.Matcher
	logger    *slog.Logger

	mu     sync.RWMutex
	drafts map[string]*reconcile.Session
}

// NewReportService creates the draft/report orchestrator.
func NewReportService(repo store.Repository, converter *currency.Converter, m *matcher.Matcher, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		repo:      repo,
		converter: converter,
		matcher:   m,
		logger:    logger,
		drafts:    make(map[string]*reconcile.Session),
	}
}

// CreateDraft opens a new empty draft report and returns its id.
func (s *ReportService) CreateDraft() string {
	id := "DRAFT-" + uuid.NewString()[:8]

	s.mu.Lock()
	s.drafts[id] = reconcile.NewSession(s.repo)
	s.mu.Unlock()

	s.logger.Info("draft report created", "draft", id)
	return id
}

func (s *ReportService) draft(id string) (*reconcile.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.drafts[id]
	if !ok {
		return nil, fmt.Errorf("draft %s: %w", id, ErrDraftNotFound)
	}
	return session, nil
}

// Items returns a draft's expense queue.
func (s *ReportService) Items(draftID string) ([]*expense.Item, error) {
	session, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}
	return session.Items(), nil
}

// Matches returns a draft's expense-to-transaction map.
func (s *ReportService) Matches(draftID string) (map[string]string, error) {
	session, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}
	return session.Matches(), nil
}

// AddItem accepts an extracted expense into the draft queue, assigning
// an id when the caller did not.
func (s *ReportService) AddItem(draftID string, item expense.Item) (*expense.Item, error) {
	session, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}

	if item.ID == "" {
		item.ID = "EXP-" + uuid.NewString()[:8]
	}
	session.AddItem(&item)

	s.logger.Info("expense added to draft", "draft", draftID, "item", item.ID, "vendor", item.Vendor)
	return &item, nil
}

// RemoveItem drops an item from the draft, releasing its match.
func (s *ReportService) RemoveItem(draftID, itemID string) error {
	session, err := s.draft(draftID)
	if err != nil {
		return err
	}
	session.RemoveItem(itemID)
	return nil
}

// Candidates returns the transactions an item may match, each scored,
// plus the auto-selected best match when one clears the threshold.
// Candidates are restricted to the draft's anchor card once a first
// match exists.
func (s *ReportService) Candidates(draftID, itemID string) ([]Candidate, *matcher.BestMatch, error) {
	session, err := s.draft(draftID)
	if err != nil {
		return nil, nil, err
	}

	item, ok := session.Item(itemID)
	if !ok {
		return nil, nil, fmt.Errorf("item %s: %w", itemID, ErrItemNotFound)
	}

	pool := session.ProposeCandidates()
	amountUSD := s.converter.ToUSD(item.Total, item.Currency)

	candidates := make([]Candidate, 0, len(pool))
	for _, tx := range pool {
		candidates = append(candidates, Candidate{
			Transaction: tx,
			Score:       s.matcher.Score(tx, item, amountUSD),
		})
	}

	best := s.matcher.FindBestMatch(item, amountUSD, pool, session.Matches())
	return candidates, best, nil
}

// ConfirmMatch links an expense item to a transaction. A pool receipt
// covering the same purchase is retired, since the synthetic receipt on
// the transaction now represents it.
func (s *ReportService) ConfirmMatch(draftID, expenseID, transactionID string) (string, error) {
	session, err := s.draft(draftID)
	if err != nil {
		return "", err
	}

	receiptID, err := session.ConfirmMatch(expenseID, transactionID)
	if err != nil {
		s.logger.Warn("match rejected", "draft", draftID, "item", expenseID, "transaction", transactionID, "error", err)
		return "", err
	}

	if item, ok := session.Item(expenseID); ok {
		s.retirePoolReceipt(item)
	}

	s.logger.Info("expense matched", "draft", draftID, "item", expenseID, "transaction", transactionID, "receipt", receiptID)
	return receiptID, nil
}

// retirePoolReceipt removes the first unmatched receipt carrying the
// item's vendor and amount, if one exists.
func (s *ReportService) retirePoolReceipt(item *expense.Item) {
	amountUSD := s.converter.ToUSD(item.Total, item.Currency)
	for _, r := range s.repo.UnmatchedReceipts() {
		if strings.EqualFold(r.Vendor, item.Vendor) && math.Abs(r.Amount-amountUSD) < 0.01 {
			s.repo.RemoveUnmatchedReceipt(r.ID)
			return
		}
	}
}

// UndoMatch reverses a match. Undoing an unmatched expense is a no-op.
func (s *ReportService) UndoMatch(draftID, expenseID string) error {
	session, err := s.draft(draftID)
	if err != nil {
		return err
	}

	session.UndoMatch(expenseID)
	s.logger.Info("expense unmatched", "draft", draftID, "item", expenseID)
	return nil
}

// Submit validates the draft and turns it into a submitted report:
// the title and a known cost code are required, the queue must be
// non-empty, and every matched transaction must share one card. On
// success the report is stored, the queue clears, and the draft closes.
func (s *ReportService) Submit(draftID string, req SubmitRequest) (*store.Report, error) {
	session, err := s.draft(draftID)
	if err != nil {
		return nil, err
	}

	if req.Title == "" {
		return nil, ErrTitleRequired
	}
	if req.CostCode == "" {
		return nil, ErrCostCodeRequired
	}
	if _, ok := s.repo.Budget(req.CostCode); !ok {
		return nil, fmt.Errorf("cost code %s: %w", req.CostCode, ErrCostCodeUnknown)
	}

	items := session.Items()
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	if err := session.ValidateSingleCard(); err != nil {
		s.logger.Warn("report submission blocked", "draft", draftID, "error", err)
		return nil, err
	}

	matches := session.Matches()

	var cardInfo *store.CardInfo
	reportItems := make([]store.ReportItem, 0, len(items))
	total := 0.0
	for _, item := range items {
		amountUSD := round2(s.converter.ToUSD(item.Total, item.Currency))
		total += amountUSD

		ri := store.ReportItem{
			ID:          item.ID,
			Date:        item.Date,
			Vendor:      item.Vendor,
			Total:       item.Total,
			Currency:    item.Currency,
			ExpenseType: item.ExpenseType,
			AmountUSD:   amountUSD,
		}

		if txID, ok := matches[item.ID]; ok {
			if tx, found := s.repo.Transaction(txID); found {
				ri.MatchedTransactionID = txID
				ri.CardNumber = tx.CardNumber
				ri.AccountName = tx.AccountName
				if cardInfo == nil {
					cardInfo = &store.CardInfo{CardNumber: tx.CardNumber, AccountName: tx.AccountName}
				}
			}
		}
		reportItems = append(reportItems, ri)
	}

	now := time.Now()
	report := &store.Report{
		ID:          "REP-" + uuid.NewString()[:8],
		Title:       req.Title,
		Description: req.Description,
		CostCode:    req.CostCode,
		CardInfo:    cardInfo,
		Items:       reportItems,
		TotalAmount: round2(total),
		Currency:    currency.USD,
		Status:      store.ReportSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.repo.AddReport(report)
	session.Clear()

	s.mu.Lock()
	delete(s.drafts, draftID)
	s.mu.Unlock()

	s.logger.Info("report submitted", "report", report.ID, "items", len(report.Items), "total", report.TotalAmount)
	return report, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
