package logic

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/marswrapped/wrapped-api/internal/models"
)

// WinRateEvaluation grades a win rate (percent) against the fair share for
// the table size: 50% heads-up, 25% at four players.
func WinRateEvaluation(winRate float64, pc models.PlayerCount) string {
	avg := 25.0
	if pc == models.TwoPlayer {
		avg = 50
	}
	switch {
	case winRate >= avg*2:
		return "火星女神的宠儿！"
	case winRate >= avg*1.5:
		return "实力派选手，让人羡慕！"
	case winRate >= avg:
		return "超过平均线，稳稳的幸福！"
	case winRate >= avg*0.5:
		return "每一局都是宝贵的经验！"
	default:
		return "享受过程最重要~"
	}
}

func GamesEvaluation(totalGames int) string {
	switch {
	case totalGames >= 200:
		return "等研究出火星移民技术后第一个就把你送上去 👑"
	case totalGames >= 100:
		return "火星资深居民，值得尊敬！"
	case totalGames >= 50:
		return "火星签证已升级为永久居留"
	case totalGames >= 20:
		return "火星上有你的专属停车位了"
	case totalGames >= 10:
		return "欢迎加入火星移民大军"
	default:
		return "火星欢迎你，常来玩啊~"
	}
}

// RankDescription renders a top-100 rank; nil means unranked.
func RankDescription(rank *int) string {
	if rank == nil {
		return "未进入前100"
	}
	return fmt.Sprintf("第%d名", *rank)
}

// Ranks lists the user's global top-N placements in a fixed order.
func Ranks(u *models.UserRecord) []models.RankItem {
	if u == nil {
		return nil
	}
	gr := u.GlobalRankings
	items := []models.RankItem{
		{Label: "游戏场次", Rank: gr.TotalGamesTop100},
		{Label: "胜率", Rank: gr.WinRateTop100},
		{Label: "平均排名", Rank: gr.AvgPositionTop100},
		{Label: "出牌数量", Rank: gr.TotalCardsTop100},
		{Label: "最快结束", Rank: gr.ShortestGenerationsTop100},
		{Label: "最慢结束", Rank: gr.LongestGenerationsTop100},
		{Label: "最高分", Rank: gr.MaxScoreTop100},
	}
	for i := range items {
		items[i].Description = RankDescription(items[i].Rank)
	}
	if gr.TrueskillTop200 != nil {
		items = append(items, models.RankItem{
			Label:       "天梯",
			Rank:        gr.TrueskillTop200,
			Description: fmt.Sprintf("第%d名", *gr.TrueskillTop200),
		})
	}
	return items
}

// GenerationDistribution returns one bucket per numeric generation key,
// sorted by generation.
func GenerationDistribution(u *models.UserRecord) []models.GenerationBucket {
	if u == nil {
		return nil
	}
	buckets := make([]models.GenerationBucket, 0, len(u.RecordsByGeneration))
	for key, rec := range u.RecordsByGeneration {
		gen, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		buckets = append(buckets, models.GenerationBucket{
			Generation: gen,
			Count:      rec.TotalGameCount,
			MaxScore:   rec.MaxScore,
		})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Generation < buckets[j].Generation })
	return buckets
}

type titleText struct {
	name string
	desc string
}

var titleTexts = map[string]titleText{
	"games":   {"火星常客", "你一共游玩了 {value} 局游戏！火星上的熟面孔！"},
	"winRate": {"火星高手", "胜率高达 {value}%！实力派选手，令人佩服！"},
	"cards":   {"项目达人", "平均每局打出 {value} 张牌，效率超群！"},
	"tr":      {"改造先锋", "平均每局贡献 {value} TR，火星因你而更美好！"},
	"fastGen": {"速通玩家", "平均 {value} 代结束游戏，速度与激情！"},
	"slowGen": {"策略大师", "平均 {value} 代结束，深谋远虑的策略家！"},
	"default": {"火星探索者", "2025年感谢你为火星做出的贡献，每一局都很精彩！"},
}

const (
	corpTitlePrefix = "国服"
	corpTitleSuffix = "达人"
)

// Annual title thresholds.
const (
	titleMinGames      = 100
	titleWinRateMargin = 10.0
	titleMinAvgCards   = 35.0
	titleMinAvgTR      = 35.0
	titleFastGenMax    = 9.0
	titleSlowGenMin    = 12.0
)

func newTitle(key, value string) models.Title {
	t := titleTexts[key]
	return models.Title{
		Key:         key,
		Name:        t.name,
		Description: strings.ReplaceAll(t.desc, "{value}", value),
	}
}

// AnnualTitles awards every title whose threshold the player meets, in a
// fixed order. A player who earns none gets the default title.
func AnnualTitles(u *models.UserRecord, pc models.PlayerCount) []models.Title {
	if u == nil {
		return []models.Title{newTitle("default", "")}
	}
	s := u.PlayerStats
	fairShare := 25.0
	if pc == models.TwoPlayer {
		fairShare = 50
	}

	var titles []models.Title
	if s.TotalGames >= titleMinGames {
		titles = append(titles, newTitle("games", strconv.Itoa(s.TotalGames)))
	}
	if s.WinRate >= fairShare+titleWinRateMargin {
		titles = append(titles, newTitle("winRate", fixed(s.WinRate, 1)))
	}
	if s.AvgCardsPlayed >= titleMinAvgCards {
		titles = append(titles, newTitle("cards", fixed(s.AvgCardsPlayed, 1)))
	}
	if s.AvgTR >= titleMinAvgTR {
		titles = append(titles, newTitle("tr", fixed(s.AvgTR, 1)))
	}
	switch {
	case s.AvgGenerations > 0 && s.AvgGenerations <= titleFastGenMax:
		titles = append(titles, newTitle("fastGen", fixed(s.AvgGenerations, 1)))
	case s.AvgGenerations >= titleSlowGenMin:
		titles = append(titles, newTitle("slowGen", fixed(s.AvgGenerations, 1)))
	}

	if len(titles) == 0 {
		titles = append(titles, newTitle("default", ""))
	}
	return titles
}

// CorporationTitles names the player after each corporation they rank in the
// national top 100 for, in list order.
func CorporationTitles(u *models.UserRecord) []models.Title {
	if u == nil {
		return nil
	}
	var titles []models.Title
	for _, c := range u.Top100Corporations {
		if c.Rank < 1 || c.Rank > 100 {
			continue
		}
		name := c.CNName
		if name == "" {
			name = c.Corporation
		}
		titles = append(titles, models.Title{
			Key:         c.Corporation,
			Name:        corpTitlePrefix + name + corpTitleSuffix,
			Description: fmt.Sprintf("%s使用%d次，排名第%d", name, c.UsageCount, c.Rank),
		})
	}
	return titles
}
