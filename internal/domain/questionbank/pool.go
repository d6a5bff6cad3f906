package questionbank

import "fmt"

// Tier is a difficulty classification attached to questions.
type Tier string

const (
	TierHard    Tier = "hard"
	TierExtreme Tier = "extreme"
)

// CriterionKind selects the pool-filtering strategy.
type CriterionKind string

const (
	CriterionAll     CriterionKind = "all"
	CriterionTier    CriterionKind = "tier"
	CriterionSection CriterionKind = "section"
)

// Criterion describes which questions are eligible for a quiz: every
// question, one difficulty tier, or one section.
type Criterion struct {
	Kind    CriterionKind `json:"kind"`
	Tier    Tier          `json:"tier,omitempty"`
	Section int           `json:"section,omitempty"`
}

// AllQuestions matches the whole bank.
func AllQuestions() Criterion {
	return Criterion{Kind: CriterionAll}
}

// ByTier matches questions tagged with the given tier.
func ByTier(tier Tier) Criterion {
	return Criterion{Kind: CriterionTier, Tier: tier}
}

// BySection matches the questions of one section.
func BySection(number int) Criterion {
	return Criterion{Kind: CriterionSection, Section: number}
}

// Validate rejects malformed criteria before they reach pool selection.
func (c Criterion) Validate() error {
	switch c.Kind {
	case CriterionAll:
		return nil
	case CriterionTier:
		if c.Tier != TierHard && c.Tier != TierExtreme {
			return fmt.Errorf("unknown tier %q", c.Tier)
		}
		return nil
	case CriterionSection:
		return nil
	default:
		return fmt.Errorf("unknown criterion kind %q", c.Kind)
	}
}

// SelectPool produces the candidate questions for a quiz. It is pure and
// deterministic; randomness (sampling, shuffling) happens in the session.
// An unknown section or an empty tier yields an empty pool, which the
// caller must refuse to start a quiz from.
func SelectPool(sections []Section, criterion Criterion) []Question {
	pool := make([]Question, 0)
	switch criterion.Kind {
	case CriterionTier:
		for _, section := range sections {
			for _, q := range section.Questions {
				if criterion.Tier == TierHard && q.IsHard {
					pool = append(pool, q)
				}
				if criterion.Tier == TierExtreme && q.IsExtreme {
					pool = append(pool, q)
				}
			}
		}
	case CriterionSection:
		for _, section := range sections {
			if section.Number == criterion.Section {
				pool = append(pool, section.Questions...)
			}
		}
	default:
		for _, section := range sections {
			pool = append(pool, section.Questions...)
		}
	}
	return pool
}
