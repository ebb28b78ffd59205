package contract

type AgentRole string

const (
	RoleAttraction AgentRole = "attraction"
	RoleWeather    AgentRole = "weather"
	RoleHotel      AgentRole = "hotel"
	RolePlanner    AgentRole = "planner"
)

// SpecialistRoles is the fixed evidence-gathering order of the pipeline.
var SpecialistRoles = []AgentRole{RoleAttraction, RoleWeather, RoleHotel}

// TripRequest is the caller-owned input. The pipeline never mutates it.
type TripRequest struct {
	City           string   `json:"city"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	TravelDays     int      `json:"travel_days"`
	Transportation string   `json:"transportation"`
	Accommodation  string   `json:"accommodation"`
	Preferences    []string `json:"preferences"`
	FreeTextInput  string   `json:"free_text_input,omitempty"`
}

type GeoPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type HotelInfo struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Location      GeoPoint `json:"location"`
	PriceRange    string   `json:"price_range"`
	Rating        string   `json:"rating"`
	Distance      string   `json:"distance"`
	Type          string   `json:"type"`
	EstimatedCost float64  `json:"estimated_cost"`
}

type AttractionInfo struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Location      GeoPoint `json:"location"`
	VisitDuration int      `json:"visit_duration"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	TicketPrice   float64  `json:"ticket_price"`
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

type MealInfo struct {
	Type          MealType `json:"type"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	EstimatedCost float64  `json:"estimated_cost"`
}

type DayPlan struct {
	Date           string           `json:"date"`
	DayIndex       int              `json:"day_index"`
	Description    string           `json:"description"`
	Transportation string           `json:"transportation"`
	Accommodation  string           `json:"accommodation"`
	Hotel          HotelInfo        `json:"hotel"`
	Attractions    []AttractionInfo `json:"attractions"`
	Meals          []MealInfo       `json:"meals"`
}

type WeatherInfo struct {
	Date          string `json:"date"`
	DayWeather    string `json:"day_weather"`
	NightWeather  string `json:"night_weather"`
	DayTemp       int    `json:"day_temp"`
	NightTemp     int    `json:"night_temp"`
	WindDirection string `json:"wind_direction"`
	WindPower     string `json:"wind_power"`
}

// BudgetSummary aggregates estimated costs. Total should equal the sum of the
// category totals; the figures come from the model and stay advisory.
type BudgetSummary struct {
	TotalAttractions    float64 `json:"total_attractions"`
	TotalHotels         float64 `json:"total_hotels"`
	TotalMeals          float64 `json:"total_meals"`
	TotalTransportation float64 `json:"total_transportation"`
	Total               float64 `json:"total"`
}

// TripPlan is the validated planner output.
type TripPlan struct {
	City               string        `json:"city"`
	StartDate          string        `json:"start_date"`
	EndDate            string        `json:"end_date"`
	Days               []DayPlan     `json:"days"`
	WeatherInfo        []WeatherInfo `json:"weather_info"`
	OverallSuggestions string        `json:"overall_suggestions"`
	Budget             BudgetSummary `json:"budget"`
}

// Operation describes one remotely-defined gateway tool.
type Operation struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
}

// Evidence is a specialist's unstructured text hand-off. No schema is
// enforced at this hop; the planner must tolerate arbitrary content.
type Evidence struct {
	Role AgentRole `json:"role"`
	Text string    `json:"text"`
}
