package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	contractx "github.com/tripweaver/tripweaver/agent/contract"
)

var (
	//go:embed template/attraction.txt
	attractionRaw string

	//go:embed template/weather.txt
	weatherRaw string

	//go:embed template/hotel.txt
	hotelRaw string

	//go:embed template/planner.txt
	plannerRaw string
)

// PromptSet holds the fixed system instructions per agent.
type PromptSet struct {
	Attraction string
	Weather    string
	Hotel      string
	Planner    string
}

// LoadPromptSet returns the embedded prompts, trimmed. Safe to call
// concurrently; the embed is compile-time.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Attraction: strings.TrimSpace(attractionRaw),
		Weather:    strings.TrimSpace(weatherRaw),
		Hotel:      strings.TrimSpace(hotelRaw),
		Planner:    strings.TrimSpace(plannerRaw),
	}
}

// System returns the instruction for a specialist role, empty for roles
// without one.
func (p PromptSet) System(role contractx.AgentRole) string {
	switch role {
	case contractx.RoleAttraction:
		return p.Attraction
	case contractx.RoleWeather:
		return p.Weather
	case contractx.RoleHotel:
		return p.Hotel
	case contractx.RolePlanner:
		return p.Planner
	}
	return ""
}

// SpecialistQuery builds the single task string a specialist sends to its
// model.
func SpecialistQuery(role contractx.AgentRole, req contractx.TripRequest) string {
	city := strings.TrimSpace(req.City)
	switch role {
	case contractx.RoleAttraction:
		return fmt.Sprintf("Search popular tourist attractions in %s", city)
	case contractx.RoleWeather:
		return fmt.Sprintf("Look up the weather in %s from %s to %s", city, req.StartDate, req.EndDate)
	case contractx.RoleHotel:
		return fmt.Sprintf("Search well-rated hotels for tourists in %s", city)
	}
	return ""
}

// PlannerQuery renders the planner's user message from the request and the
// three joined evidence blocks.
func PlannerQuery(req contractx.TripRequest, attractions, weather, hotels string) string {
	preferences := "none"
	if len(req.Preferences) > 0 {
		preferences = strings.Join(req.Preferences, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %d-day travel plan for %s from the information below.\n\n", req.TravelDays, req.City)

	b.WriteString("[Basic information]\n")
	fmt.Fprintf(&b, "- City: %s\n", req.City)
	fmt.Fprintf(&b, "- Dates: %s to %s\n", req.StartDate, req.EndDate)
	fmt.Fprintf(&b, "- Days: %d\n", req.TravelDays)
	fmt.Fprintf(&b, "- Transportation: %s\n", req.Transportation)
	fmt.Fprintf(&b, "- Accommodation: %s\n", req.Accommodation)
	fmt.Fprintf(&b, "- Preferences: %s\n\n", preferences)

	fmt.Fprintf(&b, "[Attraction information]\n%s\n\n", attractions)
	fmt.Fprintf(&b, "[Weather information]\n%s\n\n", weather)
	fmt.Fprintf(&b, "[Hotel information]\n%s\n\n", hotels)

	b.WriteString("[Requirements]\n")
	b.WriteString("1. Schedule 2-3 attractions per day\n")
	b.WriteString("2. Include breakfast, lunch, and dinner suggestions every day\n")
	b.WriteString("3. Recommend one concrete hotel per day, drawn from the hotel information\n")
	b.WriteString("4. Account for travel distance and time\n")
	b.WriteString("5. Return complete JSON only\n")
	b.WriteString("6. Attractions need realistic coordinates\n")

	if extra := strings.TrimSpace(req.FreeTextInput); extra != "" {
		fmt.Fprintf(&b, "\n[Additional requirements]\n%s\n", extra)
	}

	return b.String()
}
