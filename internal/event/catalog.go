package event

import (
	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
)

// Item is one entry of a catalog: a job (Value is the annual salary), a car, a house or a shop item.
type Item struct {
	Key   string          `json:"key"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	// Bill is the monthly subscription that comes with a shop item, if any.
	Bill *model.RecurringBill `json:"bill,omitempty"`
}

func item(key, name string, value int64) Item {
	return Item{Key: key, Name: name, Value: decimal.NewFromInt(value)}
}

func subscription(key, name string, price int64, bill string, monthly int64) Item {
	it := item(key, name, price)
	it.Bill = &model.RecurringBill{Name: bill, Amount: decimal.NewFromInt(monthly)}
	return it
}

var (
	HighSchoolJobs = []Item{
		item("retail_associate", "Retail Associate", 25000),
		item("food_service_worker", "Food Service Worker", 22000),
		item("warehouse_worker", "Warehouse Worker", 28000),
	}
	TradeJobs = []Item{
		item("electrician_apprentice", "Electrician Apprentice", 35000),
		item("plumber_assistant", "Plumber Assistant", 32000),
		item("hvac_technician", "HVAC Technician", 38000),
	}
	CollegeJobs = []Item{
		item("entry_level_accountant", "Entry-Level Accountant", 50000),
		item("marketing_coordinator", "Marketing Coordinator", 45000),
		item("software_developer", "Software Developer", 65000),
	}

	// Career catalogs are used by free job searches and scale with experience.
	HighSchoolCareers = []Item{
		item("retail_associate", "Retail Associate", 25000),
		item("food_service_worker", "Food Service Worker", 22000),
		item("warehouse_worker", "Warehouse Worker", 28000),
		item("office_clerk", "Office Clerk", 30000),
	}
	TradeCareers = []Item{
		item("electrician", "Electrician", 45000),
		item("plumber", "Plumber", 48000),
		item("hvac_technician", "HVAC Technician", 50000),
		item("automotive_mechanic", "Automotive Mechanic", 42000),
	}
	CollegeCareers = []Item{
		item("accountant", "Accountant", 60000),
		item("marketing_manager", "Marketing Manager", 65000),
		item("software_developer", "Software Developer", 75000),
		item("financial_analyst", "Financial Analyst", 70000),
	}

	Cars = []Item{
		item("used_economy", "Used Economy Car", 5000),
		item("new_economy", "New Economy Car", 18000),
		item("used_luxury", "Used Luxury Car", 15000),
		item("new_luxury", "New Luxury Car", 35000),
	}
	Houses = []Item{
		item("starter_home", "Small Starter Home", 150000),
		item("family_home", "Mid-size Family Home", 250000),
		item("luxury_home", "Large Luxury Home", 500000),
		item("urban_condo", "Urban Condo", 200000),
	}
	ShopItems = []Item{
		item("groceries", "Groceries", 50),
		item("clothes", "Clothes", 100),
		subscription("smartphone", "Smartphone", 600, "Phone Plan", 30),
		subscription("tv", "TV", 400, "Streaming Service", 15),
		subscription("laptop", "Laptop", 900, "Software Subscription", 10),
		item("gift", "Gift", 30),
	}
)

// JobsFor returns the entry-level offers for an education level.
func JobsFor(edu model.Education) []Item {
	switch edu {
	case model.TradeSchool:
		return TradeJobs
	case model.CollegeGraduate:
		return CollegeJobs
	default:
		return HighSchoolJobs
	}
}

// CareersFor returns the job-search catalog for an education level.
func CareersFor(edu model.Education) []Item {
	switch edu {
	case model.TradeSchool:
		return TradeCareers
	case model.CollegeGraduate:
		return CollegeCareers
	default:
		return HighSchoolCareers
	}
}

// Find looks an item up by key.
func Find(items []Item, key string) (Item, bool) {
	for _, it := range items {
		if it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}
