package models

// PlayerCount selects which aggregate file a report is built from.
type PlayerCount int

const (
	TwoPlayer  PlayerCount = 2
	FourPlayer PlayerCount = 4
)

// Valid reports whether pc is one of the two published variants.
func (pc PlayerCount) Valid() bool {
	return pc == TwoPlayer || pc == FourPlayer
}

// Dataset is the root of one static aggregate file (batch_user_aggregate_{2,4}p.json).
// It is read-only once decoded.
type Dataset struct {
	Summary  Summary                `json:"summary"`
	Rankings Rankings               `json:"rankings"`
	Users    map[string]*UserRecord `json:"users"`
}

type Summary struct {
	TotalUsers    int `json:"total_users"`
	TotalGames    int `json:"total_games"`
	TotalWins     int `json:"total_wins"`
	PlayersFilter int `json:"players_filter"`
	MinGames      int `json:"min_games"`
}

// Rankings holds the global top-N lists. Only the first two are always present.
type Rankings struct {
	TotalGamesTop100          []RankingEntry `json:"total_games_top100"`
	WinRateTop100             []RankingEntry `json:"win_rate_top100"`
	AvgPositionTop100         []RankingEntry `json:"avg_position_top100,omitempty"`
	TotalCardsTop100          []RankingEntry `json:"total_cards_top100,omitempty"`
	ShortestGenerationsTop100 []RankingEntry `json:"shortest_generations_top100,omitempty"`
	LongestGenerationsTop100  []RankingEntry `json:"longest_generations_top100,omitempty"`
	MaxScoreTop100            []RankingEntry `json:"max_score_top100,omitempty"`
}

// Clone returns a deep copy so a report never aliases dataset slices.
func (r Rankings) Clone() Rankings {
	return Rankings{
		TotalGamesTop100:          cloneEntries(r.TotalGamesTop100),
		WinRateTop100:             cloneEntries(r.WinRateTop100),
		AvgPositionTop100:         cloneEntries(r.AvgPositionTop100),
		TotalCardsTop100:          cloneEntries(r.TotalCardsTop100),
		ShortestGenerationsTop100: cloneEntries(r.ShortestGenerationsTop100),
		LongestGenerationsTop100:  cloneEntries(r.LongestGenerationsTop100),
		MaxScoreTop100:            cloneEntries(r.MaxScoreTop100),
	}
}

func cloneEntries(in []RankingEntry) []RankingEntry {
	if in == nil {
		return nil
	}
	out := make([]RankingEntry, len(in))
	copy(out, in)
	return out
}

type RankingEntry struct {
	UserKey     string  `json:"user_key"`
	TotalGames  int     `json:"total_games,omitempty"`
	WinRate     float64 `json:"win_rate"`
	AvgPosition float64 `json:"avg_position,omitempty"`
	TotalWins   int     `json:"total_wins,omitempty"`
	AvgScore    float64 `json:"avg_score,omitempty"`
	Rank        int     `json:"rank"`
}

// UserRecord is everything the aggregator computed for one player.
type UserRecord struct {
	Metadata            UserMetadata                `json:"metadata"`
	PlayerStats         PlayerStats                 `json:"player_stats"`
	RecordsByGeneration map[string]GenerationRecord `json:"records_by_generation"`
	Top100Corporations  []CorporationRanking        `json:"top100_corporations"`
	TimeStats           map[string]any              `json:"time_stats,omitempty"`
	GlobalRankings      GlobalRankings              `json:"global_rankings"`
}

type UserMetadata struct {
	UserKey       string   `json:"user_key"`
	InputNames    []string `json:"input_names"`
	UserIDs       []string `json:"user_ids"`
	NotFoundNames []string `json:"not_found_names"`
	PlayersFilter int      `json:"players_filter"`
	RawGameCount  int      `json:"raw_game_count"`
}

// PlayerStats carries totals, sums and the averages derived from them.
// Averages are trusted as-is; sum/count is never recomputed here.
type PlayerStats struct {
	TotalGames          int      `json:"total_games"`
	TotalWins           int      `json:"total_wins"`
	WinRate             float64  `json:"win_rate"`
	AvgPosition         float64  `json:"avg_position"`
	AvgScore            float64  `json:"avg_score"`
	AvgGenerations      float64  `json:"avg_generations"`
	AvgTR               float64  `json:"avg_tr"`
	AvgCardsPlayed      float64  `json:"avg_cards_played"`
	TotalPositionSum    float64  `json:"total_position_sum"`
	TotalScoreSum       float64  `json:"total_score_sum"`
	TotalGenerationsSum float64  `json:"total_generations_sum"`
	TotalTRSum          float64  `json:"total_tr_sum"`
	TotalCardsPlayedSum float64  `json:"total_cards_played_sum"`
	TRGames             int      `json:"tr_games"`
	CardsGames          int      `json:"cards_games"`
	PlayersCount        int      `json:"players_count"`
	UserIDs             []string `json:"user_ids"`
	UserNames           []string `json:"user_names"`
}

type GenerationRecord struct {
	Generation     int `json:"generation"`
	TotalGameCount int `json:"total_game_count"`
	MaxScore       int `json:"max_score"`
	MaxCardsPlayed int `json:"max_cards_played"`
}

type CorporationRanking struct {
	Corporation string  `json:"corporation"`
	CNName      string  `json:"cn_name"`
	Rank        int     `json:"rank,omitempty"`
	UsageCount  int     `json:"usage_count"`
	AvgScore    float64 `json:"avg_score"`
	AvgPosition float64 `json:"avg_position"`
	WinRate     float64 `json:"win_rate"`
}

// GlobalRankings uses nil for "not in the global top-N".
type GlobalRankings struct {
	TotalGamesTop100          *int `json:"total_games_top100"`
	WinRateTop100             *int `json:"win_rate_top100"`
	AvgPositionTop100         *int `json:"avg_position_top100"`
	TotalCardsTop100          *int `json:"total_cards_top100"`
	ShortestGenerationsTop100 *int `json:"shortest_generations_top100"`
	LongestGenerationsTop100  *int `json:"longest_generations_top100"`
	MaxScoreTop100            *int `json:"max_score_top100"`
	TrueskillTop200           *int `json:"trueskill_top200"`
}
