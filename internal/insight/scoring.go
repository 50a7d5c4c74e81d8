// internal/insight/scoring.go
package insight

import (
	"strings"

	"knowyourcompany/internal/models"
)

// ScoreResult is the output of one scoring pass over a signal set.
type ScoreResult struct {
	AuthenticityScore float64
	RiskTier          models.RiskTier
	Flags             []string
	CompanyType       models.CompanyType
}

// Scorer reduces a heterogeneous signal list to a bounded verdict.
// Pure: no I/O, deterministic for a given lexicon.
type Scorer struct {
	lexicon Lexicon
}

func NewScorer(lexicon Lexicon) *Scorer {
	return &Scorer{lexicon: lexicon}
}

// Score computes the authenticity score, risk tier, warning flags and
// inferred company type for one signal set plus request context.
func (sc *Scorer) Score(signals []models.Signal, req models.CheckRequest) ScoreResult {
	var (
		flags      []string
		sentiments []float64
		ratings    []float64
	)

	for _, sig := range signals {
		if sig.Snippet != "" {
			sentiments = append(sentiments, sc.analyzeSentiment(sig.Snippet))
		}
		if sig.Rating != nil && isReviewPlatform(sig.Platform) {
			ratings = append(ratings, *sig.Rating)
		}
	}

	// Neutral prior, adjusted by sentiment ratio and platform ratings.
	score := 50.0

	if len(sentiments) > 0 {
		posCount, negCount := 0, 0
		for _, s := range sentiments {
			if s > 0 {
				posCount++
			} else if s < 0 {
				negCount++
			}
		}
		ratio := float64(posCount-negCount) / float64(len(sentiments))
		score += ratio * 25
	}

	if len(ratings) > 0 {
		sum := 0.0
		for _, r := range ratings {
			sum += r
		}
		avg := sum / float64(len(ratings))
		score += (avg / 5.0) * 25
	}

	// Evidence-volume penalty. Zero signals overrides the adjustments
	// entirely with a fixed low-confidence value.
	switch {
	case len(signals) == 0:
		flags = append(flags, models.FlagNoExternalSignals)
		score = 20.0
	case len(signals) < 3:
		flags = append(flags, models.FlagLimitedExternalSignals)
		score *= 0.9
	}

	hasLinkedIn, hasGlassdoor := false, false
	for _, sig := range signals {
		switch sig.Platform {
		case models.PlatformLinkedIn:
			hasLinkedIn = true
		case models.PlatformGlassdoor:
			hasGlassdoor = true
		}
	}
	if !hasLinkedIn {
		flags = append(flags, models.FlagNoLinkedInPage)
	}
	if !hasGlassdoor {
		flags = append(flags, models.FlagNoGlassdoorPresence)
	}
	if req.Website == "" {
		flags = append(flags, models.FlagNoWebsiteProvided)
	}

	companyType := sc.inferCompanyType(signals, req.Name)

	if companyType == models.TypeTraining || companyType == models.TypeEdTech {
		for _, sig := range signals {
			if sig.Snippet == "" {
				continue
			}
			lower := strings.ToLower(sig.Snippet)
			if containsAny(lower, sc.lexicon.Training) && containsAny(lower, sc.lexicon.Internship) {
				flags = append(flags, models.FlagCourseMarketedAsInternship)
				break
			}
		}
	}

	score = clamp(score, 0.0, 100.0)

	return ScoreResult{
		AuthenticityScore: score,
		RiskTier:          deriveRiskTier(score, flags),
		Flags:             flags,
		CompanyType:       companyType,
	}
}

// analyzeSentiment computes a lexical polarity in [-1, 1] by keyword
// matching, 0 when no keyword from either table matches.
func (sc *Scorer) analyzeSentiment(text string) float64 {
	lower := strings.ToLower(text)

	posHits := countMatches(lower, sc.lexicon.Positive)
	negHits := countMatches(lower, sc.lexicon.Negative)

	total := posHits + negHits
	if total == 0 {
		return 0.0
	}
	return float64(posHits-negHits) / float64(total)
}

// inferCompanyType tests the keyword tables in strict priority order
// against the company name plus all snippets. The ordering is a
// deliberate tie-break: text matching both training and edtech
// vocabulary classifies as training.
func (sc *Scorer) inferCompanyType(signals []models.Signal, companyName string) models.CompanyType {
	var b strings.Builder
	b.WriteString(companyName)
	for _, sig := range signals {
		if sig.Snippet != "" {
			b.WriteString(" ")
			b.WriteString(sig.Snippet)
		}
	}
	combined := strings.ToLower(b.String())

	switch {
	case containsAny(combined, sc.lexicon.Training):
		return models.TypeTraining
	case containsAny(combined, sc.lexicon.EdTech):
		return models.TypeEdTech
	case containsAny(combined, sc.lexicon.Staffing):
		return models.TypeStaffing
	case containsAny(combined, sc.lexicon.ITServices):
		return models.TypeITServices
	}
	return ""
}

// deriveRiskTier maps (score, flags) to a tier. Critical flags dominate
// the score; a very low score with few flags means "not enough evidence
// to call it", not "high risk".
func deriveRiskTier(score float64, flags []string) models.RiskTier {
	for _, f := range flags {
		if f == models.FlagCourseMarketedAsInternship || f == models.FlagNoExternalSignals {
			return models.RiskHigh
		}
	}

	switch {
	case score >= 75:
		return models.RiskLow
	case score >= 50:
		return models.RiskMedium
	case score >= 25:
		return models.RiskHigh
	}

	if len(flags) >= 3 {
		return models.RiskHigh
	}
	return models.RiskUnknown
}

func isReviewPlatform(p models.Platform) bool {
	return p == models.PlatformGlassdoor || p == models.PlatformAmbitionBox
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
