package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/marswrapped/wrapped-api/internal/logic"
	"github.com/marswrapped/wrapped-api/internal/models"
)

// Writes synthetic aggregate files so the server can run against DATA_DIR
// without the production batch export.

var corporations = []struct{ name, cn string }{
	{"Credicor", "信贷公司"},
	{"Ecoline", "生态线"},
	{"Helion", "太阳神"},
	{"Mining Guild", "采矿协会"},
	{"Interplanetary Cinematics", "星际影业"},
	{"Inventrix", "发明家"},
	{"Phobolog", "火卫一"},
	{"Tharsis Republic", "塔尔西斯共和国"},
	{"Thorgate", "雷神之门"},
	{"Saturn Systems", "土星系统"},
}

func main() {
	out := flag.String("out", "./data", "directory to write batch_user_aggregate_{2,4}p.json into")
	users := flag.Int("users", 50, "number of synthetic players per file")
	seed := flag.Uint64("seed", 2025, "random seed")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		sugar.Fatalw("Failed to create output directory", "dir", *out, "error", err)
	}

	for _, pc := range []models.PlayerCount{models.TwoPlayer, models.FourPlayer} {
		rng := rand.New(rand.NewPCG(*seed, uint64(pc)))
		ds := generate(rng, pc, *users)

		if issues := logic.CheckDataset(ds); len(issues) > 0 {
			sugar.Fatalw("Generated dataset is inconsistent", "playerCount", int(pc), "first", issues[0].String())
		}

		path := filepath.Join(*out, logic.DataFileName(pc))
		data, err := json.MarshalIndent(ds, "", "  ")
		if err != nil {
			sugar.Fatalw("Failed to marshal dataset", "playerCount", int(pc), "error", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			sugar.Fatalw("Failed to write dataset", "path", path, "error", err)
		}
		sugar.Infow("Wrote dataset", "path", path, "users", len(ds.Users), "games", ds.Summary.TotalGames)
	}
}

func generate(rng *rand.Rand, pc models.PlayerCount, n int) *models.Dataset {
	ds := &models.Dataset{
		Summary: models.Summary{PlayersFilter: int(pc), MinGames: 5},
		Users:   make(map[string]*models.UserRecord, n),
	}

	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("player%03d", i+1)
		u := generateUser(rng, pc, key)
		ds.Users[key] = u
		keys = append(keys, key)

		ds.Summary.TotalUsers++
		ds.Summary.TotalGames += u.PlayerStats.TotalGames
		ds.Summary.TotalWins += u.PlayerStats.TotalWins
	}

	ds.Rankings.TotalGamesTop100 = rank(ds, keys, func(s models.PlayerStats) float64 { return float64(s.TotalGames) }, true)
	ds.Rankings.WinRateTop100 = rank(ds, keys, func(s models.PlayerStats) float64 { return s.WinRate }, true)
	ds.Rankings.AvgPositionTop100 = rank(ds, keys, func(s models.PlayerStats) float64 { return s.AvgPosition }, false)
	ds.Rankings.TotalCardsTop100 = rank(ds, keys, func(s models.PlayerStats) float64 { return s.TotalCardsPlayedSum }, true)

	for _, e := range ds.Rankings.TotalGamesTop100 {
		ds.Users[e.UserKey].GlobalRankings.TotalGamesTop100 = intPtr(e.Rank)
	}
	for _, e := range ds.Rankings.WinRateTop100 {
		ds.Users[e.UserKey].GlobalRankings.WinRateTop100 = intPtr(e.Rank)
	}
	for _, e := range ds.Rankings.AvgPositionTop100 {
		ds.Users[e.UserKey].GlobalRankings.AvgPositionTop100 = intPtr(e.Rank)
	}
	for _, e := range ds.Rankings.TotalCardsTop100 {
		ds.Users[e.UserKey].GlobalRankings.TotalCardsTop100 = intPtr(e.Rank)
	}
	// A ladder rank only for the leading third, so the optional slide shows up for some players.
	for i, e := range ds.Rankings.WinRateTop100 {
		if i < n/3 {
			ds.Users[e.UserKey].GlobalRankings.TrueskillTop200 = intPtr(i + 1)
		}
	}

	return ds
}

func generateUser(rng *rand.Rand, pc models.PlayerCount, key string) *models.UserRecord {
	games := 5 + rng.IntN(150)
	fair := 1 / float64(pc)
	wins := 0
	var posSum, scoreSum, genSum, trSum, cardsSum float64
	byGen := map[string]models.GenerationRecord{}

	for g := 0; g < games; g++ {
		pos := 1 + rng.IntN(int(pc))
		if rng.Float64() < fair*1.2 {
			pos = 1
		}
		if pos == 1 {
			wins++
		}
		gen := 8 + rng.IntN(6)
		score := 50 + rng.IntN(80)
		cards := 15 + rng.IntN(35)

		posSum += float64(pos)
		scoreSum += float64(score)
		genSum += float64(gen)
		trSum += float64(20 + rng.IntN(30))
		cardsSum += float64(cards)

		gk := fmt.Sprint(gen)
		rec := byGen[gk]
		rec.Generation = gen
		rec.TotalGameCount++
		rec.MaxScore = max(rec.MaxScore, score)
		rec.MaxCardsPlayed = max(rec.MaxCardsPlayed, cards)
		byGen[gk] = rec
	}

	n := float64(games)
	stats := models.PlayerStats{
		TotalGames:          games,
		TotalWins:           wins,
		WinRate:             round2(float64(wins) * 100 / n),
		AvgPosition:         round2(posSum / n),
		AvgScore:            round2(scoreSum / n),
		AvgGenerations:      round2(genSum / n),
		AvgTR:               round2(trSum / n),
		AvgCardsPlayed:      round2(cardsSum / n),
		TotalPositionSum:    posSum,
		TotalScoreSum:       scoreSum,
		TotalGenerationsSum: genSum,
		TotalTRSum:          trSum,
		TotalCardsPlayedSum: cardsSum,
		TRGames:             games,
		CardsGames:          games,
		PlayersCount:        int(pc),
		UserNames:           []string{key},
	}

	var corps []models.CorporationRanking
	for _, i := range rng.Perm(len(corporations))[:3] {
		c := corporations[i]
		corps = append(corps, models.CorporationRanking{
			Corporation: c.name,
			CNName:      c.cn,
			Rank:        1 + rng.IntN(150),
			UsageCount:  1 + rng.IntN(games),
			AvgScore:    round2(60 + rng.Float64()*40),
			AvgPosition: round2(1 + rng.Float64()*float64(pc-1)),
			WinRate:     round2(rng.Float64() * 60),
		})
	}

	return &models.UserRecord{
		Metadata: models.UserMetadata{
			UserKey:       key,
			InputNames:    []string{key},
			PlayersFilter: int(pc),
			RawGameCount:  games,
		},
		PlayerStats:         stats,
		RecordsByGeneration: byGen,
		Top100Corporations:  corps,
	}
}

func rank(ds *models.Dataset, keys []string, metric func(models.PlayerStats) float64, desc bool) []models.RankingEntry {
	sorted := append([]string(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := metric(ds.Users[sorted[i]].PlayerStats), metric(ds.Users[sorted[j]].PlayerStats)
		if desc {
			return a > b
		}
		return a < b
	})
	if len(sorted) > 100 {
		sorted = sorted[:100]
	}

	entries := make([]models.RankingEntry, len(sorted))
	for i, key := range sorted {
		s := ds.Users[key].PlayerStats
		entries[i] = models.RankingEntry{
			UserKey:     key,
			TotalGames:  s.TotalGames,
			WinRate:     s.WinRate,
			AvgPosition: s.AvgPosition,
			TotalWins:   s.TotalWins,
			AvgScore:    s.AvgScore,
			Rank:        i + 1,
		}
	}
	return entries
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func intPtr(v int) *int { return &v }
