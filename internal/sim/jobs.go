package sim

import (
	"fmt"
	"math"

	"MoneySmartz/internal/event"
	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// JobOffer is one result of a job search.
type JobOffer struct {
	Title  string          `json:"title"`
	Salary decimal.Decimal `json:"salary"`
}

const (
	workingAge        = 18
	experienceRaise   = 0.03
	salaryNoise       = 0.10
	minRaise          = 1.05
	baseHireChance    = 0.70
	collegeHireBonus  = 0.20
	tradeHireBonus    = 0.10
	experiencePerYear = 0.01
	maxExperienceBump = 0.20
	maxHireChance     = 0.95
)

func (s *Session) experience() int {
	return max(0, s.player.Age-workingAge)
}

// SearchJobs lists openings for the player's education. When employed only offers paying at
// least 5% more than the current salary are kept. The offers stay valid until the next search or
// hire.
func (s *Session) SearchJobs() ([]JobOffer, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	multiplier := 1 + experienceRaise*float64(s.experience())
	floor := s.player.Salary().InexactFloat64() * minRaise

	offers := make([]JobOffer, 0, 4)
	for _, job := range event.CareersFor(s.player.Education) {
		noise := 1 - salaryNoise + 2*salaryNoise*s.rng.Float64()
		salary := math.Round(job.Value.InexactFloat64() * multiplier * noise)
		if s.player.Employed() && salary < floor {
			continue
		}
		offers = append(offers, JobOffer{Title: job.Name, Salary: decimal.NewFromFloat(salary)})
	}
	s.offers = offers
	return append([]JobOffer(nil), offers...), nil
}

// HireChance is the probability an application succeeds.
func (s *Session) HireChance() float64 {
	chance := baseHireChance
	switch s.player.Education {
	case model.CollegeGraduate:
		chance += collegeHireBonus
	case model.TradeSchool:
		chance += tradeHireBonus
	}
	chance += math.Min(maxExperienceBump, experiencePerYear*float64(s.experience()))
	return math.Min(maxHireChance, chance)
}

// ApplyForJob applies to an offer from the last search and reports whether the player was hired.
func (s *Session) ApplyForJob(title string) (bool, error) {
	if err := s.live(); err != nil {
		return false, err
	}
	var offer *JobOffer
	for i := range s.offers {
		if s.offers[i].Title == title {
			offer = &s.offers[i]
			break
		}
	}
	if offer == nil {
		return false, fmt.Errorf("%w: no offer for %q", ErrNotFound, title)
	}
	if s.rng.Float64() >= s.HireChance() {
		s.log.WithFields(s.fields()).WithField("title", title).Info("application rejected")
		return false, nil
	}
	s.employ(offer.Title, offer.Salary)
	adjustScore(s.player, s.rules.NewJobBonus)
	s.log.WithFields(s.fields()).WithFields(logrus.Fields{"title": title}).Debug("application accepted")
	return true, nil
}

// Offers returns the offers from the last search.
func (s *Session) Offers() []JobOffer {
	return append([]JobOffer(nil), s.offers...)
}
