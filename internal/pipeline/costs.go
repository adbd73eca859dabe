package pipeline

import (
	"sort"

	"ccview/internal/config"
	"ccview/internal/model"
)

// ModelCost holds cost components for one model across sessions.
type ModelCost struct {
	Model     string
	Calls     int
	InputTok  int64
	OutputTok int64

	Input         float64
	Output        float64
	CacheCreation float64
	CacheRead     float64
	Total         float64
}

// TotalCosts holds aggregate costs split by token type.
type TotalCosts struct {
	Input         float64
	Output        float64
	CacheCreation float64
	CacheRead     float64
	Total         float64
}

// CostsByModel recomputes per-model cost breakdowns from session messages.
// The cost model is pure, so recomputation here matches the scalar costs the
// enrichment pass stored on each usage record.
func CostsByModel(sessions []model.Session) (TotalCosts, []ModelCost) {
	var totals TotalCosts
	byModel := make(map[string]*ModelCost)

	for si := range sessions {
		msgs := sessions[si].Messages
		for mi := range msgs {
			msg := msgs[mi].Message
			if msg == nil || msg.Usage == nil {
				continue
			}
			u := msg.Usage
			if u.InputTokens == 0 && u.OutputTokens == 0 {
				continue
			}

			bd, _ := config.CostFor(u, msg.Model, u.ServiceTier)
			name := config.NormalizeModelName(msg.Model)

			row, ok := byModel[name]
			if !ok {
				row = &ModelCost{Model: name}
				byModel[name] = row
			}
			row.Calls++
			row.InputTok += u.InputTokens
			row.OutputTok += u.OutputTokens
			row.Input += bd.Input
			row.Output += bd.Output
			row.CacheCreation += bd.CacheCreation
			row.CacheRead += bd.CacheRead
			row.Total += bd.Total

			totals.Input += bd.Input
			totals.Output += bd.Output
			totals.CacheCreation += bd.CacheCreation
			totals.CacheRead += bd.CacheRead
		}
	}

	totals.Total = totals.Input + totals.Output + totals.CacheCreation + totals.CacheRead

	rows := make([]ModelCost, 0, len(byModel))
	for _, row := range byModel {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})

	return totals, rows
}
