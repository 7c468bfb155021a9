package suggest

import (
	"strings"

	"github.com/hearthloaf/hearthloaf/internal/models"
)

// glossaryMatchLimit caps how many glossary terms one query can surface
const glossaryMatchLimit = 2

// defaultGlossary is the embedded baking glossary shown alongside search
// results. It is small by design; entries link to fragment anchors on the
// glossary page.
var defaultGlossary = []models.GlossaryTerm{
	{ID: "autolyse", Term: "Autolyse", Definition: "Resting flour and water together before adding salt and starter, letting the flour hydrate fully"},
	{ID: "banneton", Term: "Banneton", Definition: "A rattan proofing basket that supports shaped dough during its final rise"},
	{ID: "bulk-fermentation", Term: "Bulk fermentation", Definition: "The first rise, from mixing until the dough is divided and shaped"},
	{ID: "crumb", Term: "Crumb", Definition: "The interior texture of a baked loaf, from tight and even to open and lacy"},
	{ID: "hydration", Term: "Hydration", Definition: "The weight of water relative to flour in a dough, expressed as a baker's percentage"},
	{ID: "lamination", Term: "Lamination", Definition: "Stretching dough into a thin sheet and folding it to build strength and add inclusions"},
	{ID: "levain", Term: "Levain", Definition: "An offshoot of a sourdough starter built specifically for one bake"},
	{ID: "oven-spring", Term: "Oven spring", Definition: "The rapid expansion of a loaf during the first minutes of baking"},
	{ID: "poolish", Term: "Poolish", Definition: "A wet pre-ferment of equal parts flour and water raised with a small amount of yeast"},
	{ID: "scoring", Term: "Scoring", Definition: "Slashing the surface of a shaped loaf so it expands predictably in the oven"},
	{ID: "starter", Term: "Starter", Definition: "A maintained culture of wild yeast and bacteria used to leaven sourdough bread"},
	{ID: "windowpane", Term: "Windowpane", Definition: "A gluten development test where dough stretches thin enough to pass light without tearing"},
}

// Glossary performs synchronous substring matching against an embedded term
// list. No I/O, no ranking score; matched terms carry rank zero and sort by
// arrival position among equal-score items.
type Glossary struct {
	terms []models.GlossaryTerm
}

// NewGlossary creates a glossary over the embedded default term list
func NewGlossary() *Glossary {
	return &Glossary{terms: defaultGlossary}
}

// NewGlossaryWithTerms creates a glossary over a caller-supplied term list
func NewGlossaryWithTerms(terms []models.GlossaryTerm) *Glossary {
	return &Glossary{terms: terms}
}

// Match returns suggestions for terms whose name or definition contains the
// query, case-insensitively. At most two matches are returned.
func (g *Glossary) Match(query string) []models.SearchSuggestion {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []models.SearchSuggestion
	for _, term := range g.terms {
		if !strings.Contains(strings.ToLower(term.Term), query) &&
			!strings.Contains(strings.ToLower(term.Definition), query) {
			continue
		}

		matches = append(matches, models.SearchSuggestion{
			ID:      term.ID,
			Title:   term.Term,
			Type:    models.SuggestionTypeGlossaryTerm,
			Excerpt: term.Definition,
			URL:     "#" + term.ID,
		})

		if len(matches) == glossaryMatchLimit {
			break
		}
	}

	return matches
}
