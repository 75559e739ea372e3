package event

import (
	"errors"
	"fmt"

	"MoneySmartz/internal/fund"
	"MoneySmartz/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidChoice is returned when a choice does not match what the event offers.
var ErrInvalidChoice = errors.New("invalid choice")

// Kind identifies what paused the simulation.
type Kind string

const (
	RandomFinancial      Kind = "random_financial"
	HighSchoolGraduation Kind = "high_school_graduation"
	CollegeGraduation    Kind = "college_graduation"
	FirstJob             Kind = "first_job"
	CarPurchase          Kind = "car_purchase"
	HousePurchase        Kind = "house_purchase"
	FamilyPlanning       Kind = "family_planning"
)

// OptionID names a branch the player can take.
type OptionID string

const (
	OptCollege           OptionID = "college"
	OptTradeSchool       OptionID = "trade_school"
	OptWork              OptionID = "work"
	OptTakeJob           OptionID = "take_job"
	OptBuy               OptionID = "buy"
	OptMarry             OptionID = "marry"
	OptMarryWithChildren OptionID = "marry_with_children"
	OptAccept            OptionID = "accept"
	OptPay               OptionID = "pay"
	OptDecline           OptionID = "decline"
)

// Option is one branch of an event. Items and Sources list what the choice may name.
type Option struct {
	ID      OptionID      `json:"id"`
	Label   string        `json:"label"`
	Items   []Item        `json:"items,omitempty"`
	Sources []fund.Source `json:"sources,omitempty"`
}

// Event is a pending decision. It exists only until it is resolved.
type Event struct {
	ID          uuid.UUID       `json:"id"`
	Kind        Kind            `json:"kind"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CashDelta   decimal.Decimal `json:"cash_delta"`
	Options     []Option        `json:"options"`
	At          model.Tick      `json:"at"`
}

// Choice is the caller's answer to an event.
type Choice struct {
	Option OptionID    `json:"option"`
	Item   string      `json:"item,omitempty"`
	Source fund.Source `json:"source,omitempty"`
}

// IsLifeStage reports whether the event is a deterministic life-stage branch point.
func (e *Event) IsLifeStage() bool { return e.Kind != RandomFinancial }

// Option returns the offered option with the given id.
func (e *Event) Option(id OptionID) (Option, bool) {
	for _, o := range e.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Validate checks c against the offered options and returns the selected item, if any.
func (e *Event) Validate(c Choice) (Item, error) {
	opt, ok := e.Option(c.Option)
	if !ok {
		return Item{}, fmt.Errorf("%w: option %q not offered by %s", ErrInvalidChoice, c.Option, e.Kind)
	}
	var it Item
	if len(opt.Items) > 0 {
		found, ok := Find(opt.Items, c.Item)
		if !ok {
			return Item{}, fmt.Errorf("%w: item %q not available for %s", ErrInvalidChoice, c.Item, c.Option)
		}
		it = found
	}
	if len(opt.Sources) > 0 && !allowed(opt.Sources, c.Source) {
		return Item{}, fmt.Errorf("%w: source %q not allowed for %s", ErrInvalidChoice, c.Source, c.Option)
	}
	return it, nil
}

func allowed(sources []fund.Source, s fund.Source) bool {
	if s == "" {
		s = fund.SourceAuto
	}
	for _, src := range sources {
		if src == s {
			return true
		}
	}
	return false
}

func newEvent(kind Kind, name, description string, at model.Tick, options ...Option) *Event {
	return &Event{
		ID:          uuid.New(),
		Kind:        kind,
		Name:        name,
		Description: description,
		Options:     options,
		At:          at,
	}
}

var decline = Option{ID: OptDecline, Label: "Not now"}

// NewHighSchoolGraduation offers college, trade school or going straight to work.
func NewHighSchoolGraduation(at model.Tick) *Event {
	tuition := []fund.Source{fund.SourceCash, fund.SourceBank, fund.SourceLoan}
	return newEvent(HighSchoolGraduation, "High School Graduation",
		"You graduated from high school. Time to decide what comes next.", at,
		Option{ID: OptCollege, Label: "Go to college ($20,000/year for 4 years)", Sources: tuition},
		Option{ID: OptTradeSchool, Label: "Go to trade school ($10,000)", Sources: tuition},
		Option{ID: OptWork, Label: "Start working full-time", Items: HighSchoolJobs},
	)
}

// NewCollegeGraduation follows the degree with college-level job offers.
func NewCollegeGraduation(at model.Tick) *Event {
	return newEvent(CollegeGraduation, "College Graduation",
		"You graduated from college with a bachelor's degree. Better jobs are open to you.", at,
		Option{ID: OptTakeJob, Label: "Take a job", Items: CollegeJobs},
		decline,
	)
}

// NewFirstJob offers entry-level jobs for the player's education.
func NewFirstJob(edu model.Education, at model.Tick) *Event {
	return newEvent(FirstJob, "Job Opportunity",
		"Full-time positions are available for someone with your background.", at,
		Option{ID: OptTakeJob, Label: "Take a job", Items: JobsFor(edu)},
		decline,
	)
}

// NewCarPurchase offers the car catalog, paid outright or with an auto loan.
func NewCarPurchase(at model.Tick) *Event {
	return newEvent(CarPurchase, "Car Purchase Opportunity",
		"Having your own car could be useful now.", at,
		Option{ID: OptBuy, Label: "Buy a car", Items: Cars,
			Sources: []fund.Source{fund.SourceCash, fund.SourceBank, fund.SourceLoan}},
		decline,
	)
}

// NewHousePurchase offers the house catalog with a 20% down payment and a mortgage.
func NewHousePurchase(at model.Tick) *Event {
	return newEvent(HousePurchase, "House Purchase Opportunity",
		"Buying a house could be a good investment at this stage of life.", at,
		Option{ID: OptBuy, Label: "Buy a house (20% down)", Items: Houses,
			Sources: []fund.Source{fund.SourceCash, fund.SourceBank}},
		decline,
	)
}

// NewFamilyPlanning asks whether to start a family.
func NewFamilyPlanning(at model.Tick) *Event {
	return newEvent(FamilyPlanning, "Family Planning",
		"Starting a family raises monthly expenses but can bring joy to your life.", at,
		Option{ID: OptMarry, Label: "Get married"},
		Option{ID: OptMarryWithChildren, Label: "Get married and have children"},
		decline,
	)
}
