package service

import (
	"log/slog"
	"sort"
	"time"

	"github.com/olbb/expense-console-backend/internal/domain/expense"
	"github.com/olbb/expense-console-backend/internal/infrastructure/store"
)

// Dashboard is the aggregated spending view the console renders.
type Dashboard struct {
	CurrentMonthlyExpenses float64           `json:"currentMonthlyExpenses"`
	TotalExpenses          float64           `json:"totalExpenses"`
	PendingReports         int               `json:"pendingReports"`
	SubmittedReports       int               `json:"submittedReports"`
	ApprovedReports        int               `json:"approvedReports"`
	MonthlyTrend           float64           `json:"monthlyTrend"`
	Categories             []CategorySpend   `json:"categories"`
	RecentExpenses         []RecentExpense   `json:"recentExpenses"`
	ExpensesByDepartment   []DepartmentSpend `json:"expensesByDepartment"`
}

// CategorySpend is one slice of the category donut.
type CategorySpend struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RecentExpense is one row of the recent-activity table.
type RecentExpense struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Vendor   string  `json:"vendor"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Status   string  `json:"status"`
}

// DepartmentSpend is spending attributed to one department via its cards.
type DepartmentSpend struct {
	Department string  `json:"department"`
	Amount     float64 `json:"amount"`
}

// Ledger categories map onto the dashboard's display buckets.
var dashboardCategory = map[string]string{
	"Travel":          "Flights",
	"Lodging":         "Accommodations",
	"Transportation":  "Transportation",
	"Meals":           "Meals",
	"Office Supplies": "Miscellaneous",
}

var dashboardCategoryOrder = []string{"Flights", "Meals", "Accommodations", "Transportation", "Miscellaneous"}

// DashboardService aggregates ledger, report, and card state into the
// dashboard view, and recomputes budget spend from the ledger.
type DashboardService struct {
	repo   store.Repository
	logger *slog.Logger
}

// NewDashboardService creates the aggregator.
func NewDashboardService(repo store.Repository, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{repo: repo, logger: logger}
}

// Build computes the dashboard as of the given moment. The reference
// time decides which calendar month counts as "current".
func (s *DashboardService) Build(now time.Time) *Dashboard {
	txs := s.repo.Transactions()
	cards := s.repo.Cards()
	reports := s.repo.Reports()

	curYear, curMonth := now.Year(), now.Month()
	prevMonthRef := now.AddDate(0, -1, 0)
	prevYear, prevMonth := prevMonthRef.Year(), prevMonthRef.Month()

	categories := make(map[string]float64, len(dashboardCategoryOrder))
	var currentMonthly, previousMonthly, total float64

	for _, tx := range txs {
		total += tx.Amount

		d := expense.ParseDate(tx.Date)
		if d.Year() == curYear && d.Month() == curMonth {
			currentMonthly += tx.Amount
			bucket, ok := dashboardCategory[tx.Category]
			if !ok {
				bucket = "Miscellaneous"
			}
			categories[bucket] += tx.Amount
		}
		if d.Year() == prevYear && d.Month() == prevMonth {
			previousMonthly += tx.Amount
		}
	}

	trend := 0.0
	if previousMonthly > 0 {
		trend = round2((currentMonthly - previousMonthly) / previousMonthly * 100)
	}

	categorySlices := make([]CategorySpend, 0, len(dashboardCategoryOrder))
	for _, name := range dashboardCategoryOrder {
		categorySlices = append(categorySlices, CategorySpend{Name: name, Value: round2(categories[name])})
	}

	dash := &Dashboard{
		CurrentMonthlyExpenses: round2(currentMonthly),
		TotalExpenses:          round2(total),
		MonthlyTrend:           trend,
		Categories:             categorySlices,
		RecentExpenses:         recentExpenses(txs),
		ExpensesByDepartment:   departmentSpending(txs, cards),
	}

	for _, r := range reports {
		switch r.Status {
		case store.ReportPending:
			dash.PendingReports++
		case store.ReportSubmitted:
			dash.SubmittedReports++
		case store.ReportApproved:
			dash.ApprovedReports++
		}
	}

	return dash
}

// recentExpenses returns the five latest transactions, newest first.
func recentExpenses(txs []*expense.Transaction) []RecentExpense {
	sorted := make([]*expense.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date // ISO dates sort lexically
	})

	n := 5
	if len(sorted) < n {
		n = len(sorted)
	}

	out := make([]RecentExpense, 0, n)
	for _, tx := range sorted[:n] {
		status := "Pending"
		if tx.Status == expense.TransactionMatched {
			status = "Approved"
		}
		out = append(out, RecentExpense{
			ID:       tx.ID,
			Date:     tx.Date,
			Vendor:   tx.MerchantName,
			Amount:   tx.Amount,
			Category: tx.Category,
			Status:   status,
		})
	}
	return out
}

// departmentSpending attributes each transaction to its card's
// department.
func departmentSpending(txs []*expense.Transaction, cards []expense.Card) []DepartmentSpend {
	deptByCard := make(map[string]string, len(cards))
	for _, c := range cards {
		deptByCard[c.CardNumber] = c.Department
	}

	spend := make(map[string]float64)
	for _, tx := range txs {
		dept, ok := deptByCard[tx.CardNumber]
		if !ok {
			continue
		}
		spend[dept] += tx.Amount
	}

	out := make([]DepartmentSpend, 0, len(spend))
	for dept, amount := range spend {
		out = append(out, DepartmentSpend{Department: dept, Amount: round2(amount)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

// RecomputeBudgets refreshes every budget's spent figures from the
// ledger: total spend within the window, per-category lines (with the
// Travel/Flights and Lodging/Accommodations aliases), and per-department
// lines via card ownership.
func (s *DashboardService) RecomputeBudgets() {
	txs := s.repo.Transactions()
	cards := s.repo.Cards()
	budgets := s.repo.Budgets()

	deptByCard := make(map[string]string, len(cards))
	for _, c := range cards {
		deptByCard[c.CardNumber] = c.Department
	}

	for _, b := range budgets {
		start := expense.ParseDate(b.StartDate)
		end := expense.ParseDate(b.EndDate)

		var spent float64
		catSpend := make(map[string]float64)
		deptSpend := make(map[string]float64)

		for _, tx := range txs {
			d := expense.ParseDate(tx.Date)
			if d.Before(start) || d.After(end) {
				continue
			}
			spent += tx.Amount
			catSpend[budgetCategory(tx.Category)] += tx.Amount
			if dept, ok := deptByCard[tx.CardNumber]; ok {
				deptSpend[dept] += tx.Amount
			}
		}

		b.Spent = round2(spent)
		b.Remaining = round2(b.Amount - spent)
		for i := range b.Categories {
			b.Categories[i].Spent = round2(catSpend[b.Categories[i].Name])
		}
		for i := range b.Departments {
			b.Departments[i].Spent = round2(deptSpend[b.Departments[i].Name])
		}
	}

	s.repo.ReplaceBudgets(budgets)
	s.logger.Debug("budgets recomputed", "budgets", len(budgets))
}

func budgetCategory(txCategory string) string {
	switch txCategory {
	case "Travel":
		return "Flights"
	case "Lodging":
		return "Accommodations"
	default:
		return txCategory
	}
}
