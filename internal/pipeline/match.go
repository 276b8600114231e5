package pipeline

import (
	"sort"

	"itemdeck/internal"
	"itemdeck/internal/util"
)

const maxFinderResults = 5

// Finder looks processed items up by a loosely typed name, e.g. "fleet foot" for "Fleetfoot".
type Finder struct {
	items          []internal.ProcessedItem
	byName         map[string][]int
	normalizedName []string
	tokenToItems   map[string]map[int]struct{}
}

type FindCandidate struct {
	Item  internal.ProcessedItem
	Score float64
	Exact bool
}

func NewFinder(items []internal.ProcessedItem) *Finder {
	f := &Finder{
		items:          items,
		byName:         map[string][]int{},
		normalizedName: make([]string, len(items)),
		tokenToItems:   map[string]map[int]struct{}{},
	}
	for i, item := range items {
		name := util.NormalizeName(item.Name)
		f.normalizedName[i] = name
		f.byName[name] = append(f.byName[name], i)
		if class := util.NormalizeName(item.ClassName); class != name {
			f.byName[class] = append(f.byName[class], i)
		}
		for _, token := range util.Tokenize(item.Name + " " + util.DisplayNameFromClass(item.ClassName)) {
			if _, ok := f.tokenToItems[token]; !ok {
				f.tokenToItems[token] = map[int]struct{}{}
			}
			f.tokenToItems[token][i] = struct{}{}
		}
	}
	return f
}

// Find returns exact name or class-name matches when there are any, otherwise the best fuzzy
// candidates ordered by score.
func (f *Finder) Find(query string) []FindCandidate {
	normalized := util.NormalizeName(query)
	if normalized == "" {
		return nil
	}

	if exact := f.byName[normalized]; len(exact) > 0 {
		out := make([]FindCandidate, 0, len(exact))
		for _, i := range exact {
			out = append(out, FindCandidate{Item: f.items[i], Score: 1, Exact: true})
		}
		return out
	}

	return f.rankCandidates(normalized)
}

func (f *Finder) rankCandidates(query string) []FindCandidate {
	queryTokens := util.Tokenize(query)
	ids := map[int]struct{}{}
	for _, token := range queryTokens {
		for id := range f.tokenToItems[token] {
			ids[id] = struct{}{}
		}
	}
	if len(ids) == 0 {
		for i := range f.items {
			ids[i] = struct{}{}
		}
	}

	out := make([]FindCandidate, 0, len(ids))
	for id := range ids {
		name := f.normalizedName[id]
		score := scoreName(query, name, queryTokens, util.Tokenize(name))
		if score <= 0 {
			continue
		}
		out = append(out, FindCandidate{Item: f.items[id], Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Item.ClassName < out[j].Item.ClassName
	})
	if len(out) > maxFinderResults {
		out = out[:maxFinderResults]
	}
	return out
}

func scoreName(query, candidate string, queryTokens, candidateTokens []string) float64 {
	dice := util.DiceCoefficient(query, candidate)
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return dice
	}

	set := map[string]struct{}{}
	for _, t := range candidateTokens {
		set[t] = struct{}{}
	}
	overlap := 0
	for _, t := range queryTokens {
		if _, ok := set[t]; ok {
			overlap++
		}
	}
	tokenScore := float64(overlap) / float64(len(queryTokens))
	return 0.65*dice + 0.35*tokenScore
}
