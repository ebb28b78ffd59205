package contract

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses the calendar-date wire format used across the API.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

// Validate checks the request shape at the boundary before any model call.
func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.City) == "" {
		return fmt.Errorf("%w: city is required", ErrValidation)
	}
	start, err := ParseDate(r.StartDate)
	if err != nil {
		return fmt.Errorf("%w: invalid start_date %q", ErrValidation, r.StartDate)
	}
	end, err := ParseDate(r.EndDate)
	if err != nil {
		return fmt.Errorf("%w: invalid end_date %q", ErrValidation, r.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}
	if r.TravelDays <= 0 {
		return fmt.Errorf("%w: travel_days must be positive", ErrValidation)
	}
	if span := int(end.Sub(start).Hours()/24) + 1; r.TravelDays != span {
		return fmt.Errorf("%w: travel_days=%d does not match date range of %d days", ErrValidation, r.TravelDays, span)
	}
	return nil
}

// ValidatePlan enforces the plan invariants the generator is only prompted to
// honor: day count and ordering, date coverage, attraction counts, meal tags,
// and non-negative costs.
func ValidatePlan(plan *TripPlan, req TripRequest) error {
	if plan == nil {
		return fmt.Errorf("%w: plan is nil", ErrValidation)
	}
	if len(plan.Days) != req.TravelDays {
		return fmt.Errorf("%w: expected %d days, got %d", ErrValidation, req.TravelDays, len(plan.Days))
	}

	start, err := ParseDate(req.StartDate)
	if err != nil {
		return fmt.Errorf("%w: request start_date: %v", ErrValidation, err)
	}
	end, err := ParseDate(req.EndDate)
	if err != nil {
		return fmt.Errorf("%w: request end_date: %v", ErrValidation, err)
	}

	for i, day := range plan.Days {
		if day.DayIndex != i {
			return fmt.Errorf("%w: days[%d] has day_index=%d", ErrValidation, i, day.DayIndex)
		}
		date, err := ParseDate(day.Date)
		if err != nil {
			return fmt.Errorf("%w: days[%d] has invalid date %q", ErrValidation, i, day.Date)
		}
		if date.Before(start) || date.After(end) {
			return fmt.Errorf("%w: days[%d] date %s outside trip range", ErrValidation, i, day.Date)
		}
		if want := start.AddDate(0, 0, i); !date.Equal(want) {
			return fmt.Errorf("%w: days[%d] date %s, expected %s", ErrValidation, i, day.Date, want.Format(dateLayout))
		}
		if n := len(day.Attractions); n < 2 || n > 3 {
			return fmt.Errorf("%w: days[%d] has %d attractions, expected 2-3", ErrValidation, i, n)
		}
		if err := validateMeals(day.Meals); err != nil {
			return fmt.Errorf("%w: days[%d]: %v", ErrValidation, i, err)
		}
		if day.Hotel.EstimatedCost < 0 {
			return fmt.Errorf("%w: days[%d] hotel cost is negative", ErrValidation, i)
		}
		for j, a := range day.Attractions {
			if a.TicketPrice < 0 {
				return fmt.Errorf("%w: days[%d].attractions[%d] ticket price is negative", ErrValidation, i, j)
			}
		}
	}

	if len(plan.WeatherInfo) != req.TravelDays {
		return fmt.Errorf("%w: expected %d weather entries, got %d", ErrValidation, req.TravelDays, len(plan.WeatherInfo))
	}
	seen := make(map[string]bool, len(plan.WeatherInfo))
	for i, w := range plan.WeatherInfo {
		date, err := ParseDate(w.Date)
		if err != nil {
			return fmt.Errorf("%w: weather_info[%d] has invalid date %q", ErrValidation, i, w.Date)
		}
		if date.Before(start) || date.After(end) {
			return fmt.Errorf("%w: weather_info[%d] date %s outside trip range", ErrValidation, i, w.Date)
		}
		if seen[w.Date] {
			return fmt.Errorf("%w: duplicate weather entry for %s", ErrValidation, w.Date)
		}
		seen[w.Date] = true
	}

	if err := validateBudget(plan.Budget); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func validateMeals(meals []MealInfo) error {
	if len(meals) != 3 {
		return fmt.Errorf("expected 3 meals, got %d", len(meals))
	}
	counts := map[MealType]int{}
	for _, m := range meals {
		counts[m.Type]++
		if m.EstimatedCost < 0 {
			return fmt.Errorf("meal %s has negative cost", m.Type)
		}
	}
	for _, t := range []MealType{MealBreakfast, MealLunch, MealDinner} {
		if counts[t] != 1 {
			return fmt.Errorf("expected exactly one %s, got %d", t, counts[t])
		}
	}
	return nil
}

func validateBudget(b BudgetSummary) error {
	for name, v := range map[string]float64{
		"total_attractions":    b.TotalAttractions,
		"total_hotels":         b.TotalHotels,
		"total_meals":          b.TotalMeals,
		"total_transportation": b.TotalTransportation,
		"total":                b.Total,
	} {
		if v < 0 {
			return fmt.Errorf("budget %s is negative", name)
		}
	}
	return nil
}
