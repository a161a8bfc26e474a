package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/ledger"
	"github.com/theirongolddev/moneymoves/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

type formKind int

const (
	formNone formKind = iota
	formAdd
	formCategory
	formLimit
	formGoal
	formDeposit
)

var formTitles = map[formKind]string{
	formAdd:      "Log a transaction",
	formCategory: "New category",
	formLimit:    "Edit budget",
	formGoal:     "New savings goal",
	formDeposit:  "Update goal",
}

// formValues backs every dashboard form. Fields unused by a form stay empty.
type formValues struct {
	Type       string
	CategoryID string
	Amount     string
	Date       string
	Note       string
	Intent     string
	Name       string
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ledger.ErrInvalidAmount, s)
	}
	return d, nil
}

func validatePositive(s string) error {
	d, err := parseAmount(s)
	if err != nil {
		return err
	}
	if !d.IsPositive() {
		return ledger.ErrInvalidAmount
	}
	return nil
}

func validateLimit(s string) error {
	d, err := parseAmount(s)
	if err != nil {
		return err
	}
	if d.IsNegative() {
		return ledger.ErrInvalidAmount
	}
	return nil
}

func validateDelta(s string) error {
	d, err := parseAmount(s)
	if err != nil {
		return err
	}
	if d.IsZero() {
		return ledger.ErrInvalidAmount
	}
	return nil
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, ok := model.ParseDate(s); !ok {
		return ledger.ErrInvalidDate
	}
	return nil
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return ledger.ErrEmptyName
	}
	return nil
}

func newTransactionForm(v *formValues, cats []model.Category) *huh.Form {
	catOpts := make([]huh.Option[string], 0, len(cats))
	for _, c := range cats {
		catOpts = append(catOpts, huh.NewOption(c.Name, c.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", string(model.Expense)),
					huh.NewOption("Income", string(model.Income)),
				).
				Value(&v.Type),
			huh.NewSelect[string]().
				Title("Category").
				Options(catOpts...).
				Value(&v.CategoryID),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&v.Amount).
				Validate(validatePositive),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD, blank for today").
				Value(&v.Date).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Note").
				Value(&v.Note),
			huh.NewSelect[string]().
				Title("Need or want?").
				Options(
					huh.NewOption("Need", ledger.Need),
					huh.NewOption("Want", ledger.Want),
				).
				Value(&v.Intent),
		),
	)
}

func newCategoryForm(v *formValues) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Category name").
			Value(&v.Name).
			Validate(validateName),
	))
}

func newLimitForm(v *formValues, categoryName string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Monthly limit for " + categoryName).
			Description("0 removes the budget.").
			Value(&v.Amount).
			Validate(validateLimit),
	))
}

func newGoalForm(v *formValues) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Goal name").
			Value(&v.Name).
			Validate(validateName),
		huh.NewInput().
			Title("Target amount").
			Value(&v.Amount).
			Validate(validatePositive),
		huh.NewInput().
			Title("Target date").
			Placeholder("YYYY-MM-DD, blank for 60 days out").
			Value(&v.Date).
			Validate(validateOptionalDate),
	))
}

func newDepositForm(v *formValues, goalName string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Add to " + goalName).
			Description("Use a negative amount to withdraw.").
			Value(&v.Amount).
			Validate(validateDelta),
	))
}

// formMutations turns a completed form into ledger mutations.
func (a App) formMutations() ([]ledger.Mutation, error) {
	v := a.formVals
	if v == nil {
		return nil, nil
	}
	switch a.formKind {
	case formAdd:
		amt, err := parseAmount(v.Amount)
		if err != nil {
			return nil, err
		}
		return ledger.LogTransaction(model.Transaction{
			Type:       model.TxType(v.Type),
			CategoryID: v.CategoryID,
			Amount:     amt,
			Date:       strings.TrimSpace(v.Date),
			Note:       ledger.TaggedNote(v.Note, v.Intent),
		}), nil
	case formCategory:
		return ledger.NewCategory(v.Name), nil
	case formLimit:
		amt, err := parseAmount(v.Amount)
		if err != nil {
			return nil, err
		}
		return ledger.SetLimit(a.formTarget, amt), nil
	case formGoal:
		amt, err := parseAmount(v.Amount)
		if err != nil {
			return nil, err
		}
		return ledger.NewGoal(model.Goal{
			Name:       v.Name,
			Target:     amt,
			TargetDate: strings.TrimSpace(v.Date),
		}), nil
	case formDeposit:
		amt, err := parseAmount(v.Amount)
		if err != nil {
			return nil, err
		}
		return ledger.AdjustGoal(a.formTarget, amt), nil
	}
	return nil, nil
}
