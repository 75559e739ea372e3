package sim

import (
	"MoneySmartz/internal/event"
	"MoneySmartz/internal/model"
)

type trigger struct {
	kind  event.Kind
	ready func(s *Session) bool
	fire  func(s *Session) *event.Event
}

// Life-stage triggers in evaluation order. Each fires at most once per session.
var triggers = []trigger{
	{
		kind: event.HighSchoolGraduation,
		ready: func(s *Session) bool {
			return s.player.Age == 18 && s.player.Education == model.HighSchool
		},
		fire: func(s *Session) *event.Event { return event.NewHighSchoolGraduation(s.Tick()) },
	},
	{
		kind: event.CollegeGraduation,
		ready: func(s *Session) bool {
			return s.player.Age == 22 && s.player.Education == model.CollegeInProgress
		},
		fire: func(s *Session) *event.Event {
			s.player.Education = model.CollegeGraduate
			adjustScore(s.player, s.rules.GraduationBonus)
			return event.NewCollegeGraduation(s.Tick())
		},
	},
	{
		kind: event.FirstJob,
		ready: func(s *Session) bool {
			p := s.player
			return p.Age == 22 && !p.Employed() && p.Education != model.CollegeInProgress
		},
		fire: func(s *Session) *event.Event { return event.NewFirstJob(s.player.Education, s.Tick()) },
	},
	{
		kind: event.CarPurchase,
		ready: func(s *Session) bool {
			return s.player.Age == 20 && !s.player.HasAsset(model.Car)
		},
		fire: func(s *Session) *event.Event { return event.NewCarPurchase(s.Tick()) },
	},
	{
		kind: event.HousePurchase,
		ready: func(s *Session) bool {
			p := s.player
			return p.Age == 30 && !p.HasAsset(model.House) && p.Employed()
		},
		fire: func(s *Session) *event.Event { return event.NewHousePurchase(s.Tick()) },
	},
	{
		kind: event.FamilyPlanning,
		ready: func(s *Session) bool {
			p := s.player
			return p.Age >= 28 && len(p.Family) == 0 && p.Employed() &&
				s.rng.Float64() < s.rules.FamilyChance
		},
		fire: func(s *Session) *event.Event { return event.NewFamilyPlanning(s.Tick()) },
	},
}

// lifeStageEvent returns the first ready trigger's event and marks it fired.
func (s *Session) lifeStageEvent() *event.Event {
	for _, t := range triggers {
		if s.fired[t.kind] || !t.ready(s) {
			continue
		}
		s.fired[t.kind] = true
		return t.fire(s)
	}
	return nil
}
