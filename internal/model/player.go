package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Education tracks where the player is in schooling.
type Education string

const (
	HighSchool         Education = "High School"
	HighSchoolGraduate Education = "High School Graduate"
	CollegeInProgress  Education = "College (In Progress)"
	CollegeGraduate    Education = "College Graduate"
	TradeSchool        Education = "Trade School"
)

// Credit score bounds.
const (
	MinCreditScore = 300
	MaxCreditScore = 850
)

// Employment is the player's current job.
type Employment struct {
	Title        string          `json:"title"`
	AnnualSalary decimal.Decimal `json:"annual_salary"`
}

// Relation of a family member to the player.
type Relation string

const (
	Spouse Relation = "Spouse"
	Child  Relation = "Child"
)

// FamilyMember is a dependant or partner. Income is annual and counted in household income.
type FamilyMember struct {
	Relation Relation        `json:"relation"`
	Name     string          `json:"name,omitempty"`
	Age      int             `json:"age"`
	Income   decimal.Decimal `json:"income"`
}

// RecurringBill is charged every month. RemainingMonths of 0 means it never ends.
type RecurringBill struct {
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	RemainingMonths int             `json:"remaining_months"`
}

// Player is the mutable ledger of one simulated life.
type Player struct {
	Name           string          `json:"name"`
	Age            int             `json:"age"`
	Education      Education       `json:"education"`
	Employment     *Employment     `json:"employment,omitempty"`
	Cash           decimal.Decimal `json:"cash"`
	CreditScore    int             `json:"credit_score"`
	BankAccount    *BankAccount    `json:"bank_account,omitempty"`
	DebitCard      *Card           `json:"debit_card,omitempty"`
	CreditCard     *Card           `json:"credit_card,omitempty"`
	Loans          []*Loan         `json:"loans"`
	Assets         []*Asset        `json:"assets"`
	Family         []FamilyMember  `json:"family"`
	Inventory      []string        `json:"inventory"`
	RecurringBills []RecurringBill `json:"recurring_bills"`
}

// NewPlayer creates a 16-year-old high-school student.
func NewPlayer(name string, age int, cash decimal.Decimal, creditScore int) *Player {
	return &Player{
		Name:        name,
		Age:         age,
		Education:   HighSchool,
		Cash:        cash,
		CreditScore: creditScore,
	}
}

// Employed reports whether the player has a job.
func (p *Player) Employed() bool { return p.Employment != nil }

// Salary returns the annual salary, zero when unemployed.
func (p *Player) Salary() decimal.Decimal {
	if p.Employment == nil {
		return decimal.Zero
	}
	return p.Employment.AnnualSalary
}

// HouseholdIncome is salary plus every family member's income.
func (p *Player) HouseholdIncome() decimal.Decimal {
	total := p.Salary()
	for _, m := range p.Family {
		total = total.Add(m.Income)
	}
	return total
}

// HasAsset reports whether any asset of the kind is owned.
func (p *Player) HasAsset(kind AssetKind) bool {
	for _, a := range p.Assets {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// BankBalance is zero when there is no account.
func (p *Player) BankBalance() decimal.Decimal {
	if p.BankAccount == nil {
		return decimal.Zero
	}
	return p.BankAccount.Balance
}

// CreditDebt is zero when there is no credit card.
func (p *Player) CreditDebt() decimal.Decimal {
	if p.CreditCard == nil {
		return decimal.Zero
	}
	return p.CreditCard.Balance
}

// LoanDebt sums outstanding loan balances.
func (p *Player) LoanDebt() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Loans {
		total = total.Add(l.Balance)
	}
	return total
}

// AssetValue sums current asset values.
func (p *Player) AssetValue() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Assets {
		total = total.Add(a.CurrentValue)
	}
	return total
}

// FindLoan returns the loan with the given id string.
func (p *Player) FindLoan(id string) (*Loan, int) {
	for i, l := range p.Loans {
		if l.ID.String() == id {
			return l, i
		}
	}
	return nil, -1
}

// FindAsset returns the asset with the given id string.
func (p *Player) FindAsset(id string) *Asset {
	for _, a := range p.Assets {
		if a.ID.String() == id {
			return a
		}
	}
	return nil
}

// Clone returns a deep copy that shares nothing mutable with p.
func (p *Player) Clone() *Player {
	c := *p
	if p.Employment != nil {
		e := *p.Employment
		c.Employment = &e
	}
	c.BankAccount = p.BankAccount.Clone()
	c.DebitCard = p.DebitCard.Clone()
	c.CreditCard = p.CreditCard.Clone()
	c.Loans = make([]*Loan, len(p.Loans))
	for i, l := range p.Loans {
		c.Loans[i] = l.Clone()
	}
	c.Assets = make([]*Asset, len(p.Assets))
	for i, a := range p.Assets {
		cp := *a
		c.Assets[i] = &cp
	}
	c.Family = append([]FamilyMember(nil), p.Family...)
	c.Inventory = append([]string(nil), p.Inventory...)
	c.RecurringBills = append([]RecurringBill(nil), p.RecurringBills...)
	return &c
}

// CheckInvariants returns an error describing the first broken ledger invariant.
func (p *Player) CheckInvariants() error {
	if p.Cash.IsNegative() {
		return fmt.Errorf("cash negative: %s", p.Cash)
	}
	if a := p.BankAccount; a != nil && a.Balance.IsNegative() {
		return fmt.Errorf("bank balance negative: %s", a.Balance)
	}
	if c := p.CreditCard; c != nil {
		if c.Balance.IsNegative() {
			return fmt.Errorf("credit balance negative: %s", c.Balance)
		}
		if c.Balance.GreaterThan(c.Limit) {
			return fmt.Errorf("credit balance %s exceeds limit %s", c.Balance, c.Limit)
		}
	}
	if c := p.DebitCard; c != nil && !c.Balance.IsZero() {
		return fmt.Errorf("debit card carries balance %s", c.Balance)
	}
	for _, l := range p.Loans {
		if l.Balance.IsNegative() {
			return fmt.Errorf("loan %s balance negative: %s", l.ID, l.Balance)
		}
	}
	return nil
}
