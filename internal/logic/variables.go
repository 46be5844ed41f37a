package logic

import (
	"sort"
	"strconv"

	"github.com/marswrapped/wrapped-api/internal/models"
)

const (
	// UnrankedMarker stands in for a null top-100 rank.
	UnrankedMarker = "100+"
	// LadderUnrankedMarker stands in for a null ladder (top-200) rank.
	LadderUnrankedMarker = "200+"

	noValue = "-"
)

// ExtractVariables flattens a report into the variable map the slide
// templates substitute from. Values are either string or int.
func ExtractVariables(report models.ProcessedReport) models.Vars {
	vars := models.Vars{
		"username":        report.Username,
		"playerCount":     int(report.PlayerCount),
		"gamesRank":       UnrankedMarker,
		"winRateRank":     UnrankedMarker,
		"avgPositionRank": UnrankedMarker,
		"cardsRank":       UnrankedMarker,
		"ladderRank":      LadderUnrankedMarker,
	}

	if !report.IsFound || report.UserData == nil {
		vars["totalGames"] = 0
		vars["totalWins"] = 0
		vars["winRate"] = 0
		vars["avgPosition"] = noValue
		vars["avgScore"] = 0
		vars["avgTR"] = 0
		vars["avgCards"] = 0
		vars["totalCards"] = 0
		vars["totalTR"] = 0
		vars["mostPlayedGen"] = noValue
		vars["avgGenerations"] = noValue
		return vars
	}

	user := report.UserData
	stats := user.PlayerStats

	vars["totalGames"] = stats.TotalGames
	vars["totalWins"] = stats.TotalWins
	vars["winRate"] = fixed(stats.WinRate, 1)
	vars["avgPosition"] = fixed(stats.AvgPosition, 2)
	vars["avgScore"] = fixed(stats.AvgScore, 1)
	vars["avgTR"] = fixed(stats.AvgTR, 1)
	vars["avgCards"] = fixed(stats.AvgCardsPlayed, 1)
	vars["totalCards"] = roundInt(stats.TotalCardsPlayedSum)
	vars["totalTR"] = roundInt(stats.TotalTRSum)
	vars["mostPlayedGen"] = MostPlayedGeneration(user.RecordsByGeneration)
	vars["avgGenerations"] = fixed(stats.AvgGenerations, 1)

	gr := user.GlobalRankings
	vars["gamesRank"] = rankOrMarker(gr.TotalGamesTop100, UnrankedMarker)
	vars["winRateRank"] = rankOrMarker(gr.WinRateTop100, UnrankedMarker)
	vars["avgPositionRank"] = rankOrMarker(gr.AvgPositionTop100, UnrankedMarker)
	vars["cardsRank"] = rankOrMarker(gr.TotalCardsTop100, UnrankedMarker)
	vars["ladderRank"] = rankOrMarker(gr.TrueskillTop200, LadderUnrankedMarker)

	return vars
}

func rankOrMarker(rank *int, marker string) any {
	if rank == nil {
		return marker
	}
	return *rank
}

// MostPlayedGeneration returns the generation key with the strictly highest
// total_game_count. Keys are visited in ascending generation order so ties
// go to the lowest generation. Returns "-" when no generation has games.
func MostPlayedGeneration(records map[string]models.GenerationRecord) string {
	best := noValue
	top := 0
	for _, key := range sortedGenerationKeys(records) {
		if c := records[key].TotalGameCount; c > top {
			top = c
			best = key
		}
	}
	return best
}

// sortedGenerationKeys orders numeric keys numerically, then any
// non-numeric keys lexicographically.
func sortedGenerationKeys(records map[string]models.GenerationRecord) []string {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			if a != b {
				return a < b
			}
			return keys[i] < keys[j]
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
