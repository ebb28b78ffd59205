package contract

import (
	"errors"
	"testing"
)

func baseRequest() TripRequest {
	return TripRequest{
		City:           "Hangzhou",
		StartDate:      "2024-05-01",
		EndDate:        "2024-05-03",
		TravelDays:     3,
		Transportation: "train",
		Accommodation:  "mid-range",
		Preferences:    []string{"nature", "food"},
	}
}

func basePlan(req TripRequest) *TripPlan {
	plan := &TripPlan{
		City:      req.City,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Budget: BudgetSummary{
			TotalAttractions:    100,
			TotalHotels:         900,
			TotalMeals:          300,
			TotalTransportation: 100,
			Total:               1400,
		},
	}

	start, _ := ParseDate(req.StartDate)
	for i := 0; i < req.TravelDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		plan.Days = append(plan.Days, DayPlan{
			Date:     date,
			DayIndex: i,
			Hotel:    HotelInfo{Name: "Lakeside Hotel", EstimatedCost: 300},
			Attractions: []AttractionInfo{
				{Name: "West Lake", TicketPrice: 0},
				{Name: "Lingyin Temple", TicketPrice: 75},
			},
			Meals: []MealInfo{
				{Type: MealBreakfast, Name: "congee", EstimatedCost: 20},
				{Type: MealLunch, Name: "noodles", EstimatedCost: 40},
				{Type: MealDinner, Name: "hotpot", EstimatedCost: 80},
			},
		})
		plan.WeatherInfo = append(plan.WeatherInfo, WeatherInfo{Date: date, DayWeather: "sunny"})
	}
	return plan
}

func TestTripRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*TripRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*TripRequest) {}},
		{name: "missing city", mutate: func(r *TripRequest) { r.City = " " }, wantErr: true},
		{name: "bad start date", mutate: func(r *TripRequest) { r.StartDate = "05/01/2024" }, wantErr: true},
		{name: "end before start", mutate: func(r *TripRequest) { r.EndDate = "2024-04-30" }, wantErr: true},
		{name: "zero travel days", mutate: func(r *TripRequest) { r.TravelDays = 0 }, wantErr: true},
		{name: "day count mismatch", mutate: func(r *TripRequest) { r.TravelDays = 5 }, wantErr: true},
		{name: "empty preferences ok", mutate: func(r *TripRequest) { r.Preferences = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := baseRequest()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestValidatePlanAccepts(t *testing.T) {
	t.Parallel()

	req := baseRequest()
	if err := ValidatePlan(basePlan(req), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatePlanRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*TripPlan)
	}{
		{name: "wrong day count", mutate: func(p *TripPlan) { p.Days = p.Days[:2] }},
		{name: "day index out of order", mutate: func(p *TripPlan) { p.Days[1].DayIndex = 2 }},
		{name: "date outside range", mutate: func(p *TripPlan) { p.Days[2].Date = "2024-05-09" }},
		{name: "dates not ascending", mutate: func(p *TripPlan) {
			p.Days[1].Date, p.Days[2].Date = p.Days[2].Date, p.Days[1].Date
		}},
		{name: "too few attractions", mutate: func(p *TripPlan) {
			p.Days[0].Attractions = p.Days[0].Attractions[:1]
		}},
		{name: "too many attractions", mutate: func(p *TripPlan) {
			extra := p.Days[0].Attractions[0]
			p.Days[0].Attractions = append(p.Days[0].Attractions, extra, extra)
		}},
		{name: "duplicate meal tag", mutate: func(p *TripPlan) {
			p.Days[0].Meals[2].Type = MealLunch
		}},
		{name: "missing meal", mutate: func(p *TripPlan) {
			p.Days[0].Meals = p.Days[0].Meals[:2]
		}},
		{name: "negative ticket price", mutate: func(p *TripPlan) {
			p.Days[0].Attractions[0].TicketPrice = -1
		}},
		{name: "weather gap", mutate: func(p *TripPlan) {
			p.WeatherInfo = p.WeatherInfo[:2]
		}},
		{name: "duplicate weather date", mutate: func(p *TripPlan) {
			p.WeatherInfo[1].Date = p.WeatherInfo[0].Date
		}},
		{name: "negative budget", mutate: func(p *TripPlan) { p.Budget.Total = -10 }},
	}

	req := baseRequest()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			plan := basePlan(req)
			tt.mutate(plan)
			err := ValidatePlan(plan, req)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}
