package logic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marswrapped/wrapped-api/internal/models"
)

// Inclusion predicates a slide declaration may name in Requires.
const (
	RequiresCorpTitles = "corp_titles"
	RequiresLadderRank = "ladder_rank"
)

type slidePredicate func(models.ProcessedReport) bool

var slidePredicates = map[string]slidePredicate{
	RequiresCorpTitles: func(r models.ProcessedReport) bool {
		return r.UserData != nil && hasTop100Corporation(r.UserData)
	},
	RequiresLadderRank: func(r models.ProcessedReport) bool {
		return r.UserData != nil && r.UserData.GlobalRankings.TrueskillTop200 != nil
	},
}

func hasTop100Corporation(u *models.UserRecord) bool {
	for _, c := range u.Top100Corporations {
		if c.Rank >= 1 && c.Rank <= 100 {
			return true
		}
	}
	return false
}

// DefaultSlides returns a fresh copy of the built-in 13-slide deck.
func DefaultSlides() []models.SlideTemplate {
	return []models.SlideTemplate{
		{
			ID:         "welcome",
			Title:      "欢迎回来，{{username}}！",
			Subtitle:   "一年过去了，让我们看看你为火星都做了些什么吧",
			Template:   "welcome",
			Background: "from-mars-void via-mars-cosmos to-mars-rust/30",
		},
		{
			ID:         "total-games",
			Title:      "这一年你在{{playerCount}}人局中",
			Subtitle:   "{{totalGames}}",
			Template:   "stats",
			Background: "from-mars-abyss via-mars-nebula to-mars-cosmos",
			Variables: map[string]string{
				"icon":      "games",
				"highlight": "totalGames",
				"unit":      "场游戏",
				"detail":    "每一局都是你与火星的浪漫约会 ❤️",
			},
		},
		{
			ID:         "win-rate",
			Title:      "你的胜率是",
			Subtitle:   "{{winRate}}%",
			Template:   "highlight",
			Background: "from-mars-void via-amber-950/30 to-mars-abyss",
			Variables: map[string]string{
				"subtext":    "共收割了 {{totalWins}} 场胜利 💪",
				"comparison": "winRateRank",
			},
		},
		{
			ID:         "avg-position",
			Title:      "你的平均排名是",
			Subtitle:   "第 {{avgPosition}} 名",
			Template:   "stats",
			Background: "from-mars-void via-mars-rust/20 to-mars-sienna/10",
			Variables: map[string]string{
				"detail": "平均每局能拿 {{avgScore}} 分，还不错嘛！",
			},
		},
		{
			ID:         "cards-played",
			Title:      "你一共打出了",
			Subtitle:   "{{totalCards}}",
			Template:   "highlight",
			Background: "from-mars-abyss via-cyan-950/20 to-mars-cosmos",
			Variables: map[string]string{
				"unit":    "张卡牌",
				"subtext": "平均每局 {{avgCards}} 张，手速还挺快的 ⚡",
			},
		},
		{
			ID:         "tr-stats",
			Title:      "改造度",
			Subtitle:   "{{avgTR}}",
			Template:   "stats",
			Background: "from-mars-void via-emerald-950/20 to-mars-abyss",
			Variables: map[string]string{
				"unit":   "TR/局",
				"detail": "累计为火星贡献了 {{totalTR}} TR，火星人民感谢你！",
			},
		},
		{
			ID:         "generation-stats",
			Title:      "游戏回合统计",
			Subtitle:   "你最常在第 {{mostPlayedGen}} 代结束游戏",
			Template:   "generation",
			Background: "from-mars-void via-mars-oxide/15 to-mars-nebula",
			Variables: map[string]string{
				"detail": "平均 {{avgGenerations}} 代完成改造，效率还行！",
			},
		},
		{
			ID:         "corporation-stats",
			Title:      "你的火星合作伙伴",
			Subtitle:   "看看哪些公司陪你度过了最多时光",
			Template:   "corporation",
			Background: "from-mars-abyss via-purple-950/20 to-mars-cosmos",
			Variables: map[string]string{
				"emptyText": "暂无公司数据，下次记得选个好公司！",
			},
		},
		{
			ID:         "player-profile",
			Title:      "{{username}}的能力画像",
			Subtitle:   "五维雷达图告诉你，你是什么类型的火星人",
			Template:   "radar",
			Background: "from-mars-void via-mars-cosmos to-mars-abyss",
			Variables: map[string]string{
				"description": "综合评估你在各维度的表现",
			},
		},
		{
			ID:         "trueskill-rank",
			Title:      "天梯排名",
			Subtitle:   "你在2025年天梯模式中的表现",
			Template:   "trueskill",
			Background: "from-mars-void via-indigo-950/20 to-mars-abyss",
			Requires:   RequiresLadderRank,
		},
		{
			ID:         "annual-titles",
			Title:      "{{username}} 的年度称号",
			Subtitle:   "2025年，你在火星留下了这些印记",
			Template:   "titles",
			Background: "from-mars-void via-yellow-950/20 to-mars-rust/30",
		},
		{
			ID:         "corp-titles",
			Title:      "{{username}} 的公司达人称号",
			Subtitle:   "这些公司因你而闪耀",
			Template:   "corp-titles",
			Background: "from-mars-abyss via-purple-950/20 to-mars-rust/30",
			Requires:   RequiresCorpTitles,
		},
		{
			ID:         "ending",
			Title:      "感谢你的2025火星之旅",
			Subtitle:   "2025年，期待你在火星创造更多传奇！",
			Template:   "ending",
			Background: "from-mars-void via-mars-rust/20 to-mars-abyss",
		},
	}
}

// deckFile is the on-disk shape of an operator-supplied deck.
type deckFile struct {
	Slides []models.SlideTemplate `yaml:"slides"`
}

// LoadSlides reads a YAML deck from path. An empty path yields the default deck.
func LoadSlides(path string) ([]models.SlideTemplate, error) {
	if path == "" {
		return DefaultSlides(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read slides file: %w", err)
	}
	return ParseSlides(data)
}

// ParseSlides decodes and validates a YAML deck.
func ParseSlides(data []byte) ([]models.SlideTemplate, error) {
	var f deckFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse slides: %w", err)
	}
	if err := ValidateSlides(f.Slides); err != nil {
		return nil, err
	}
	return f.Slides, nil
}

// MarshalSlides encodes a deck in the format ParseSlides accepts.
func MarshalSlides(decls []models.SlideTemplate) ([]byte, error) {
	return yaml.Marshal(deckFile{Slides: decls})
}

// ValidateSlides rejects empty decks, missing or duplicate ids, missing
// template kinds and unknown Requires predicates.
func ValidateSlides(decls []models.SlideTemplate) error {
	if len(decls) == 0 {
		return fmt.Errorf("slide deck is empty")
	}
	seen := make(map[string]bool, len(decls))
	for i, d := range decls {
		if d.ID == "" {
			return fmt.Errorf("slide %d: missing id", i)
		}
		if seen[d.ID] {
			return fmt.Errorf("slide %q: duplicate id", d.ID)
		}
		seen[d.ID] = true
		if d.Template == "" {
			return fmt.Errorf("slide %q: missing template", d.ID)
		}
		if d.Requires != "" {
			if _, ok := slidePredicates[d.Requires]; !ok {
				return fmt.Errorf("slide %q: unknown requirement %q", d.ID, d.Requires)
			}
		}
	}
	return nil
}

// BuildDeck drops declarations whose requirement fails for report, renders
// the rest and numbers them 0..n-1.
func BuildDeck(decls []models.SlideTemplate, report models.ProcessedReport, vars models.Vars) []models.Slide {
	included := make([]models.SlideTemplate, 0, len(decls))
	for _, d := range decls {
		if d.Requires != "" {
			pred, ok := slidePredicates[d.Requires]
			if !ok || !pred(report) {
				continue
			}
		}
		included = append(included, d)
	}

	slides := make([]models.Slide, len(included))
	for i, d := range included {
		slides[i] = models.Slide{
			SlideTemplate: RenderSlide(d, vars),
			Index:         i,
			Total:         len(included),
		}
	}
	return slides
}
