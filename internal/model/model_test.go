package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBankAccount_DepositWithdraw(t *testing.T) {
	a := NewBankAccount(Savings)
	if !a.InterestRate.Equal(SavingsRate) {
		t.Errorf("savings rate = %s, want %s", a.InterestRate, SavingsRate)
	}
	if err := a.Deposit(dec("100"), 1); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := a.Withdraw(dec("40"), 2); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if !a.Balance.Equal(dec("60")) {
		t.Errorf("balance = %s, want 60", a.Balance)
	}
	if err := a.Withdraw(dec("60.01"), 3); !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("overdraw err = %v, want ErrInsufficientBalance", err)
	}
	if err := a.Deposit(decimal.Zero, 3); !errors.Is(err, ErrNonPositiveAmount) {
		t.Errorf("zero deposit err = %v, want ErrNonPositiveAmount", err)
	}
	if len(a.History) != 2 || a.History[1].Kind != TxWithdrawal || a.History[1].At != 2 {
		t.Errorf("unexpected history %+v", a.History)
	}
	if !NewBankAccount(Checking).InterestRate.IsZero() {
		t.Error("checking accounts earn no interest")
	}
}

func TestCard_ChargeAndPay(t *testing.T) {
	c := NewCreditCard(dec("500"))
	if err := c.Charge(dec("400"), 0); err != nil {
		t.Fatalf("charge: %v", err)
	}
	if c.CanCharge(dec("100.01")) {
		t.Error("CanCharge should refuse amounts over the limit")
	}
	if err := c.Charge(dec("100.01"), 0); !errors.Is(err, ErrOverLimit) {
		t.Errorf("over limit err = %v", err)
	}
	if !c.Available().Equal(dec("100")) {
		t.Errorf("available = %s, want 100", c.Available())
	}
	if err := c.Pay(dec("400.01"), 1); !errors.Is(err, ErrOverpayment) {
		t.Errorf("overpay err = %v", err)
	}
	if err := c.Pay(dec("400"), 1); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if !c.Balance.IsZero() {
		t.Errorf("balance = %s, want 0", c.Balance)
	}

	d := NewDebitCard()
	if err := d.Charge(dec("1"), 0); !errors.Is(err, ErrNotCredit) {
		t.Errorf("debit charge err = %v, want ErrNotCredit", err)
	}
	if !d.Available().IsZero() {
		t.Error("debit cards have no credit available")
	}
}

func TestPlayer_Aggregates(t *testing.T) {
	p := NewPlayer("Alex", 30, dec("100"), 700)
	p.Employment = &Employment{Title: "Clerk", AnnualSalary: dec("30000")}
	p.Family = []FamilyMember{{Relation: Spouse, Age: 29, Income: dec("20000")}, {Relation: Child}}
	p.BankAccount = NewBankAccount(Checking)
	p.BankAccount.Balance = dec("250")
	p.CreditCard = NewCreditCard(dec("1000"))
	p.CreditCard.Balance = dec("75")
	p.Loans = []*Loan{{Balance: dec("900")}, {Balance: dec("100")}}
	p.Assets = []*Asset{NewAsset(Car, "Car", dec("5000"))}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"household income", p.HouseholdIncome(), "50000"},
		{"bank balance", p.BankBalance(), "250"},
		{"credit debt", p.CreditDebt(), "75"},
		{"loan debt", p.LoanDebt(), "1000"},
		{"asset value", p.AssetValue(), "5000"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
	if !p.HasAsset(Car) || p.HasAsset(House) {
		t.Error("HasAsset mismatch")
	}
	if p.FindAsset(p.Assets[0].ID.String()) == nil {
		t.Error("FindAsset did not find the car")
	}
	if l, i := p.FindLoan("missing"); l != nil || i != -1 {
		t.Errorf("FindLoan(missing) = %v, %d", l, i)
	}
}

func TestPlayer_CheckInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Player)
		want   string
	}{
		{"valid", func(*Player) {}, ""},
		{"negative cash", func(p *Player) { p.Cash = dec("-1") }, "cash negative"},
		{"negative bank", func(p *Player) {
			p.BankAccount = NewBankAccount(Checking)
			p.BankAccount.Balance = dec("-0.01")
		}, "bank balance negative"},
		{"credit over limit", func(p *Player) {
			p.CreditCard = NewCreditCard(dec("500"))
			p.CreditCard.Balance = dec("501")
		}, "exceeds limit"},
		{"debit balance", func(p *Player) {
			p.DebitCard = NewDebitCard()
			p.DebitCard.Balance = dec("1")
		}, "debit card carries balance"},
		{"negative loan", func(p *Player) { p.Loans = []*Loan{{Balance: dec("-5")}} }, "loan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("Alex", 16, dec("100"), 650)
			tt.mutate(p)
			err := p.CheckInvariants()
			switch {
			case tt.want == "" && err != nil:
				t.Errorf("unexpected error: %v", err)
			case tt.want != "" && (err == nil || !strings.Contains(err.Error(), tt.want)):
				t.Errorf("err = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestPlayer_CloneIsDetached(t *testing.T) {
	p := NewPlayer("Alex", 25, dec("100"), 650)
	p.Employment = &Employment{Title: "Clerk", AnnualSalary: dec("30000")}
	p.BankAccount = NewBankAccount(Checking)
	p.Loans = []*Loan{{Balance: dec("900")}}
	p.Assets = []*Asset{NewAsset(House, "Home", dec("150000"))}
	p.Inventory = []string{"TV"}

	c := p.Clone()
	c.Employment.AnnualSalary = dec("1")
	_ = c.BankAccount.Deposit(dec("10"), 0)
	c.Loans[0].Balance = dec("0")
	c.Assets[0].Condition = Poor
	c.Inventory[0] = "Laptop"

	if !p.Salary().Equal(dec("30000")) {
		t.Error("employment shared with clone")
	}
	if !p.BankBalance().IsZero() || len(p.BankAccount.History) != 0 {
		t.Error("bank account shared with clone")
	}
	if !p.Loans[0].Balance.Equal(dec("900")) {
		t.Error("loan shared with clone")
	}
	if p.Assets[0].Condition != Good {
		t.Error("asset shared with clone")
	}
	if p.Inventory[0] != "TV" {
		t.Error("inventory shared with clone")
	}
}

func TestTransaction_String(t *testing.T) {
	got := Transaction{Kind: TxCharge, Amount: dec("12.5"), At: 3}.String()
	if got != "CHARGE -$12.50 (month 3)" {
		t.Errorf("String() = %q", got)
	}
	if Tick(25).Year() != 2 {
		t.Errorf("Tick(25).Year() = %d, want 2", Tick(25).Year())
	}
}
