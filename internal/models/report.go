package models

// ProcessedReport is built once per login attempt and discarded afterwards.
// GlobalSummary and Rankings are copies, never views into the Dataset.
type ProcessedReport struct {
	Username      string      `json:"username"`
	PlayerCount   PlayerCount `json:"player_count"`
	UserData      *UserRecord `json:"user_data"`
	GlobalSummary Summary     `json:"global_summary"`
	Rankings      Rankings    `json:"rankings"`
	IsFound       bool        `json:"is_found"`
}

// Vars is the flat variable map consumed by the template engine.
// Values are either string or int.
type Vars map[string]any

// SlideTemplate is one immutable slide declaration.
type SlideTemplate struct {
	ID         string            `json:"id" yaml:"id"`
	Title      string            `json:"title" yaml:"title"`
	Subtitle   string            `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Template   string            `json:"template" yaml:"template"`
	Background string            `json:"background,omitempty" yaml:"background,omitempty"`
	TextColor  string            `json:"text_color,omitempty" yaml:"text_color,omitempty"`
	Variables  map[string]string `json:"variables,omitempty" yaml:"variables,omitempty"`
	// Requires names an inclusion predicate; empty means always included.
	Requires string `json:"-" yaml:"requires,omitempty"`
}

// Slide is a rendered slide positioned within the filtered deck.
type Slide struct {
	SlideTemplate
	Index int `json:"index"`
	Total int `json:"total"`
}

// RadarPoint is one normalized axis of the player profile chart.
type RadarPoint struct {
	Label        string  `json:"label"`
	Value        float64 `json:"value"`
	DisplayValue string  `json:"display_value"`
}

// Archetype is the descriptive label picked from the radar scores.
type Archetype struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Title is an annual or corporation title awarded to a player.
type Title struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GenerationBucket struct {
	Generation int `json:"generation"`
	Count      int `json:"count"`
	MaxScore   int `json:"max_score"`
}

type RankItem struct {
	Label       string `json:"label"`
	Rank        *int   `json:"rank"`
	Description string `json:"description"`
}

// ReportResponse is the payload returned for a successful login.
type ReportResponse struct {
	Username      string             `json:"username"`
	PlayerCount   PlayerCount        `json:"player_count"`
	Slides        []Slide            `json:"slides"`
	CurrentSlide  int                `json:"current_slide"`
	Variables     Vars               `json:"variables"`
	Radar         []RadarPoint       `json:"radar"`
	Archetype     Archetype          `json:"archetype"`
	Titles        []Title            `json:"titles"`
	CorpTitles    []Title            `json:"corp_titles"`
	Generations   []GenerationBucket `json:"generations"`
	Ranks         []RankItem         `json:"ranks"`
	Evaluations   Evaluations        `json:"evaluations"`
	GlobalSummary Summary            `json:"global_summary"`
	ShareText     string             `json:"share_text"`
}

type Evaluations struct {
	Games   string `json:"games"`
	WinRate string `json:"win_rate"`
}
