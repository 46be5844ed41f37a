package logic

import (
	"fmt"
	"math"
	"sort"

	"github.com/marswrapped/wrapped-api/internal/models"
)

// averageTolerance absorbs the aggregator rounding averages to 2 decimals.
const averageTolerance = 0.01

// Issue is one consistency problem found in a dataset.
type Issue struct {
	User    string `json:"user,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.User == "" {
		return fmt.Sprintf("%s: %s", i.Field, i.Message)
	}
	return fmt.Sprintf("%s.%s: %s", i.User, i.Field, i.Message)
}

// CheckDataset verifies that stored averages agree with their sums and
// counts, and that ranking lists are ordered. Issues are sorted by user then
// field so output is stable.
func CheckDataset(ds *models.Dataset) []Issue {
	if ds == nil {
		return []Issue{{Field: "dataset", Message: "nil"}}
	}

	var issues []Issue
	for key, u := range ds.Users {
		if u == nil {
			issues = append(issues, Issue{User: key, Field: "record", Message: "null user record"})
			continue
		}
		issues = append(issues, checkUser(key, u)...)
	}

	for name, list := range map[string][]models.RankingEntry{
		"total_games_top100":          ds.Rankings.TotalGamesTop100,
		"win_rate_top100":             ds.Rankings.WinRateTop100,
		"avg_position_top100":         ds.Rankings.AvgPositionTop100,
		"total_cards_top100":          ds.Rankings.TotalCardsTop100,
		"shortest_generations_top100": ds.Rankings.ShortestGenerationsTop100,
		"longest_generations_top100":  ds.Rankings.LongestGenerationsTop100,
		"max_score_top100":            ds.Rankings.MaxScoreTop100,
	} {
		for i := 1; i < len(list); i++ {
			if list[i].Rank < list[i-1].Rank {
				issues = append(issues, Issue{
					Field:   "rankings." + name,
					Message: fmt.Sprintf("rank %d listed after rank %d", list[i].Rank, list[i-1].Rank),
				})
				break
			}
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].User != issues[j].User {
			return issues[i].User < issues[j].User
		}
		return issues[i].Field < issues[j].Field
	})
	return issues
}

func checkUser(key string, u *models.UserRecord) []Issue {
	var issues []Issue
	add := func(field, format string, args ...any) {
		issues = append(issues, Issue{User: key, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if u.Metadata.UserKey != "" && u.Metadata.UserKey != key {
		add("metadata.user_key", "%q does not match map key", u.Metadata.UserKey)
	}

	s := u.PlayerStats
	if s.TotalWins > s.TotalGames {
		add("total_wins", "%d wins in %d games", s.TotalWins, s.TotalGames)
	}

	games := float64(s.TotalGames)
	averages := []struct {
		field string
		avg   float64
		sum   float64
		count float64
	}{
		{"avg_position", s.AvgPosition, s.TotalPositionSum, games},
		{"avg_score", s.AvgScore, s.TotalScoreSum, games},
		{"avg_generations", s.AvgGenerations, s.TotalGenerationsSum, games},
		{"avg_tr", s.AvgTR, s.TotalTRSum, float64(s.TRGames)},
		{"avg_cards_played", s.AvgCardsPlayed, s.TotalCardsPlayedSum, float64(s.CardsGames)},
		{"win_rate", s.WinRate, float64(s.TotalWins) * 100, games},
	}
	for _, a := range averages {
		if a.count <= 0 || a.sum == 0 {
			continue
		}
		want := a.sum / a.count
		if math.Abs(want-a.avg) > averageTolerance*math.Max(1, math.Abs(want)) {
			add(a.field, "stored %.4f, sum/count gives %.4f", a.avg, want)
		}
	}

	genGames := 0
	for _, rec := range u.RecordsByGeneration {
		genGames += rec.TotalGameCount
	}
	if genGames > s.TotalGames {
		add("records_by_generation", "%d games across generations, %d total", genGames, s.TotalGames)
	}

	return issues
}
