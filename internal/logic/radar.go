package logic

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/marswrapped/wrapped-api/internal/models"
)

// Radar axis order. Chart geometry and ClassifyArchetype index by position.
const (
	AxisPosition = iota
	AxisGames
	AxisTR
	AxisCards
	AxisGeneration
	axisCount
)

var radarLabels = [axisCount]string{"平均排位", "游戏场次", "平均TR", "出牌数量", "平均时代"}

// RadarRanges are the fixed reference windows each axis is scaled against.
type RadarRanges struct {
	MaxGames float64
	MaxTR    float64
	MaxCards float64
	MinGen   float64
	MaxGen   float64
}

// DefaultRadarRanges must stay as-is for charts to match previously shared ones.
var DefaultRadarRanges = RadarRanges{
	MaxGames: 200,
	MaxTR:    50,
	MaxCards: 50,
	MinGen:   6,
	MaxGen:   14,
}

// NormalizeRadar maps five raw statistics onto 0..100 in axis order.
func NormalizeRadar(stats models.PlayerStats, pc models.PlayerCount, ranges RadarRanges) []models.RadarPoint {
	n := float64(pc)

	scores := [axisCount]float64{
		AxisPosition:   (n - stats.AvgPosition) / (n - 1) * 100,
		AxisGames:      math.Min(float64(stats.TotalGames)/ranges.MaxGames, 1) * 100,
		AxisTR:         math.Min(stats.AvgTR/ranges.MaxTR, 1) * 100,
		AxisCards:      math.Min(stats.AvgCardsPlayed/ranges.MaxCards, 1) * 100,
		AxisGeneration: (ranges.MaxGen - stats.AvgGenerations) / (ranges.MaxGen - ranges.MinGen) * 100,
	}
	display := [axisCount]string{
		AxisPosition:   fixed(stats.AvgPosition, 2),
		AxisGames:      strconv.Itoa(stats.TotalGames),
		AxisTR:         fixed(stats.AvgTR, 1),
		AxisCards:      fixed(stats.AvgCardsPlayed, 1),
		AxisGeneration: "G" + fixed(stats.AvgGenerations, 1),
	}

	points := make([]models.RadarPoint, axisCount)
	for i := range points {
		points[i] = models.RadarPoint{
			Label:        radarLabels[i],
			Value:        clampScore(scores[i]),
			DisplayValue: display[i],
		}
	}
	return points
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

type archetypeRule struct {
	archetype models.Archetype
	match     func(s [axisCount]float64) bool
}

// Overlapping rules are resolved by order; keep the all-rounder first.
var archetypeRules = []archetypeRule{
	{
		archetype: models.Archetype{ID: "commander", Name: "全能指挥官", Description: "各项能力均衡发展，火星的全能型人才"},
		match: func(s [axisCount]float64) bool {
			for _, v := range s {
				if v < 70 {
					return false
				}
			}
			return true
		},
	},
	{
		archetype: models.Archetype{ID: "strategist", Name: "策略大师", Description: "不急不躁，稳扎稳打拿下高排名"},
		match:     func(s [axisCount]float64) bool { return s[AxisPosition] >= 70 && s[AxisGeneration] < 40 },
	},
	{
		archetype: models.Archetype{ID: "speedrunner", Name: "速通玩家", Description: "火星改造的速度让人惊叹"},
		match:     func(s [axisCount]float64) bool { return s[AxisGeneration] >= 70 },
	},
	{
		archetype: models.Archetype{ID: "terraformer", Name: "改造先锋", Description: "每一局都在为火星改造添砖加瓦"},
		match:     func(s [axisCount]float64) bool { return s[AxisTR] >= 75 },
	},
	{
		archetype: models.Archetype{ID: "engine", Name: "项目达人", Description: "卡牌引擎运转如飞"},
		match:     func(s [axisCount]float64) bool { return s[AxisCards] >= 75 },
	},
	{
		archetype: models.Archetype{ID: "veteran", Name: "火星常客", Description: "火星上的熟面孔"},
		match:     func(s [axisCount]float64) bool { return s[AxisGames] >= 80 },
	},
	{
		archetype: models.Archetype{ID: "steady", Name: "稳健玩家", Description: "发挥稳定，很少掉链子"},
		match:     func(s [axisCount]float64) bool { return s[AxisPosition] >= 50 },
	},
}

var defaultArchetype = models.Archetype{ID: "explorer", Name: "火星探索者", Description: "每一局都是新的探索"}

// ClassifyArchetype walks the decision list and returns the first match.
// Points must be in axis order; a short slice yields the default.
func ClassifyArchetype(points []models.RadarPoint) models.Archetype {
	if len(points) < axisCount {
		return defaultArchetype
	}
	var s [axisCount]float64
	for i := range s {
		s[i] = points[i].Value
	}
	for _, r := range archetypeRules {
		if r.match(s) {
			return r.archetype
		}
	}
	return defaultArchetype
}

const radarLevels = 5

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type RadarLabel struct {
	Point
	Label        string `json:"label"`
	DisplayValue string `json:"display_value"`
	Anchor       string `json:"anchor"`
}

// Geometry is the pentagon chart laid out in a size x size box.
type Geometry struct {
	Size   float64      `json:"size"`
	Center Point        `json:"center"`
	Radius float64      `json:"radius"`
	Rings  [][]Point    `json:"rings"`
	Axes   []Point      `json:"axes"`
	Data   []Point      `json:"data"`
	Labels []RadarLabel `json:"labels"`
}

// RadarGeometry lays out points starting at the top and going clockwise.
func RadarGeometry(points []models.RadarPoint, size float64) Geometry {
	c := Point{X: size / 2, Y: size / 2}
	radius := size * 0.38
	g := Geometry{Size: size, Center: c, Radius: radius}
	if len(points) == 0 {
		return g
	}

	step := 2 * math.Pi / float64(len(points))
	at := func(i int, r float64) Point {
		a := -math.Pi/2 + float64(i)*step
		return Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}

	for level := 1; level <= radarLevels; level++ {
		r := float64(level) / radarLevels * radius
		ring := make([]Point, len(points))
		for i := range points {
			ring[i] = at(i, r)
		}
		g.Rings = append(g.Rings, ring)
	}

	for i, p := range points {
		g.Axes = append(g.Axes, at(i, radius))
		g.Data = append(g.Data, at(i, p.Value/100*radius))

		lp := at(i, radius+35)
		label := RadarLabel{Label: p.Label, DisplayValue: p.DisplayValue, Anchor: "middle"}
		switch {
		case lp.X < c.X-10:
			label.Anchor = "end"
			lp.X -= 8
		case lp.X > c.X+10:
			label.Anchor = "start"
			lp.X += 8
		}
		if lp.Y < c.Y {
			lp.Y -= 5
		} else {
			lp.Y += 5
		}
		label.Point = lp
		g.Labels = append(g.Labels, label)
	}
	return g
}

func pathOf(pts []Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(fmt.Sprintf("%.2f %.2f", p.X, p.Y))
	}
	sb.WriteString(" Z")
	return sb.String()
}

// RadarSVG renders a standalone SVG document for the chart.
func RadarSVG(points []models.RadarPoint, size float64) string {
	g := RadarGeometry(points, size)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg">`, size, size, size, size))
	sb.WriteString(`<defs><linearGradient id="marsDataGradient" x1="0%" y1="0%" x2="100%" y2="100%">`)
	sb.WriteString(`<stop offset="0%" stop-color="#E2725B" stop-opacity="0.6" />`)
	sb.WriteString(`<stop offset="50%" stop-color="#C1440E" stop-opacity="0.4" />`)
	sb.WriteString(`<stop offset="100%" stop-color="#8B4513" stop-opacity="0.3" />`)
	sb.WriteString(`</linearGradient></defs>`)

	for i, ring := range g.Rings {
		width := 1
		if i == len(g.Rings)-1 {
			width = 2
		}
		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="none" stroke="rgba(193, 68, 14, 0.15)" stroke-width="%d" />`, pathOf(ring), width))
	}

	for _, a := range g.Axes {
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="rgba(193, 68, 14, 0.2)" stroke-width="1" stroke-dasharray="4 4" />`, g.Center.X, g.Center.Y, a.X, a.Y))
	}

	if len(g.Data) > 0 {
		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="url(#marsDataGradient)" stroke="#C1440E" stroke-width="2" />`, pathOf(g.Data)))
	}
	for _, p := range g.Data {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="5" fill="#FFB800" stroke="#0A0A0F" stroke-width="2" />`, p.X, p.Y))
	}

	for _, l := range g.Labels {
		sb.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="%s" fill="#E8C9A0" font-size="13">%s</text>`, l.X, l.Y, l.Anchor, html.EscapeString(l.Label)))
		sb.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="%s" fill="#E2725B" font-size="11">%s</text>`, l.X, l.Y+14, l.Anchor, html.EscapeString(l.DisplayValue)))
	}

	sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="3" fill="rgba(193, 68, 14, 0.5)" />`, g.Center.X, g.Center.Y))
	sb.WriteString(`</svg>`)
	return sb.String()
}
