// internal/insight/scoring_test.go
package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"knowyourcompany/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestScoreNoSignals(t *testing.T) {
	sc := NewScorer(DefaultLexicon())

	result := sc.Score(nil, models.CheckRequest{Name: "Acme"})

	assert.Equal(t, 20.0, result.AuthenticityScore)
	assert.Equal(t, models.RiskHigh, result.RiskTier)
	assert.Equal(t, []string{
		models.FlagNoExternalSignals,
		models.FlagNoLinkedInPage,
		models.FlagNoGlassdoorPresence,
		models.FlagNoWebsiteProvided,
	}, result.Flags)
	assert.Empty(t, result.CompanyType)
}

func TestScorePositiveEvidence(t *testing.T) {
	sc := NewScorer(DefaultLexicon())

	signals := []models.Signal{
		{Platform: models.PlatformGlassdoor, SourceURL: "https://g/acme", Rating: fptr(4.5), Snippet: "great experience, genuine and supportive"},
		{Platform: models.PlatformLinkedIn, SourceURL: "https://l/acme"},
		{Platform: models.PlatformReddit, SourceURL: "https://r/1", Snippet: "legit and helpful place"},
	}

	result := sc.Score(signals, models.CheckRequest{Name: "Acme", Website: "https://acme.example"})

	// 50 + 25 (all-positive sentiment) + 22.5 (avg rating 4.5/5 * 25).
	assert.InDelta(t, 97.5, result.AuthenticityScore, 1e-9)
	assert.Equal(t, models.RiskLow, result.RiskTier)
	assert.Empty(t, result.Flags)
}

func TestScoreNegativeEvidence(t *testing.T) {
	sc := NewScorer(DefaultLexicon())

	signals := []models.Signal{
		{Platform: models.PlatformReddit, SourceURL: "https://r/1", Snippet: "total scam, avoid"},
		{Platform: models.PlatformReddit, SourceURL: "https://r/2", Snippet: "fraud, never hire from here"},
		{Platform: models.PlatformReddit, SourceURL: "https://r/3", Snippet: "worst kind of ripoff"},
	}

	result := sc.Score(signals, models.CheckRequest{Name: "Acme"})

	assert.InDelta(t, 25.0, result.AuthenticityScore, 1e-9)
	assert.Equal(t, models.RiskHigh, result.RiskTier)
	assert.Contains(t, result.Flags, models.FlagNoLinkedInPage)
	assert.Contains(t, result.Flags, models.FlagNoGlassdoorPresence)
	assert.Contains(t, result.Flags, models.FlagNoWebsiteProvided)
	assert.NotContains(t, result.Flags, models.FlagNoExternalSignals)
}

func TestScoreLimitedSignalsPenalty(t *testing.T) {
	sc := NewScorer(DefaultLexicon())

	signals := []models.Signal{
		{Platform: models.PlatformGlassdoor, SourceURL: "https://g/acme", Rating: fptr(3.5)},
		{Platform: models.PlatformLinkedIn, SourceURL: "https://l/acme"},
	}

	result := sc.Score(signals, models.CheckRequest{Name: "Acme", Website: "https://acme.example"})

	// (50 + 3.5/5*25) * 0.9
	assert.InDelta(t, 60.75, result.AuthenticityScore, 1e-9)
	assert.Equal(t, models.RiskMedium, result.RiskTier)
	assert.Equal(t, []string{models.FlagLimitedExternalSignals}, result.Flags)
}

func TestScoreLowScoreFewFlagsIsUnknown(t *testing.T) {
	sc := NewScorer(DefaultLexicon())

	signals := []models.Signal{
		{Platform: models.PlatformGlassdoor, SourceURL: "https://g/acme", Snippet: "this place is a scam"},
		{Platform: models.PlatformLinkedIn, SourceURL: "https://l/acme"},
	}

	result := sc.Score(signals, models.CheckRequest{Name: "Acme", Website: "https://acme.example"})

	assert.InDelta(t, 22.5, result.AuthenticityScore, 1e-9)
	assert.Equal(t, []string{models.FlagLimitedExternalSignals}, result.Flags)
	assert.Equal(t, models.RiskUnknown, result.RiskTier)
}

func TestScoreLowScoreManyFlagsIsHigh(t *testing.T) {
	sc := NewScorer(DefaultLexicon())

	signals := []models.Signal{
		{Platform: models.PlatformReddit, SourceURL: "https://r/1", Snippet: "obvious scam"},
	}

	result := sc.Score(signals, models.CheckRequest{Name: "Acme"})

	assert.InDelta(t, 22.5, result.AuthenticityScore, 1e-9)
	assert.GreaterOrEqual(t, len(result.Flags), 3)
	assert.Equal(t, models.RiskHigh, result.RiskTier)
}

func TestScoreCourseMarketedAsInternship(t *testing.T) {
	sc := NewScorer(DefaultLexicon())

	signals := []models.Signal{
		{Platform: models.PlatformGlassdoor, SourceURL: "https://g/skillup", Rating: fptr(5.0), Snippet: "excellent bootcamp"},
		{Platform: models.PlatformLinkedIn, SourceURL: "https://l/skillup"},
		{Platform: models.PlatformReddit, SourceURL: "https://r/1", Snippet: "the course guarantees internship placement, worth it"},
	}

	result := sc.Score(signals, models.CheckRequest{Name: "SkillUp Academy", Website: "https://skillup.example"})

	// Perfect sentiment and rating, yet the critical flag pins the tier.
	assert.InDelta(t, 100.0, result.AuthenticityScore, 1e-9)
	assert.Equal(t, models.TypeTraining, result.CompanyType)
	assert.Equal(t, []string{models.FlagCourseMarketedAsInternship}, result.Flags)
	assert.Equal(t, models.RiskHigh, result.RiskTier)
}

func TestScoreCourseFlagOnlyForTrainingAndEdTech(t *testing.T) {
	sc := NewScorer(DefaultLexicon())

	// Staffing company mentioning internships does not trip the flag.
	signals := []models.Signal{
		{Platform: models.PlatformReddit, SourceURL: "https://r/1", Snippet: "manpower agency offering internship placement"},
	}

	result := sc.Score(signals, models.CheckRequest{Name: "Acme Recruitment", Website: "https://acme.example"})

	assert.Equal(t, models.TypeStaffing, result.CompanyType)
	assert.NotContains(t, result.Flags, models.FlagCourseMarketedAsInternship)
}

func TestInferCompanyType(t *testing.T) {
	sc := NewScorer(DefaultLexicon())

	tests := []struct {
		name     string
		company  string
		snippet  string
		expected models.CompanyType
	}{
		{"training from name", "SkillUp Academy", "", models.TypeTraining},
		{"training wins over edtech", "Acme", "online learning bootcamp for skill development", models.TypeTraining},
		{"edtech", "Acme", "skill development platform", models.TypeEdTech},
		{"staffing", "Acme", "manpower and placement agency", models.TypeStaffing},
		{"it services", "Acme", "software development and consulting", models.TypeITServices},
		{"no match", "Acme", "a company that sells widgets", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var signals []models.Signal
			if tt.snippet != "" {
				signals = []models.Signal{{Platform: models.PlatformReddit, SourceURL: "https://r/1", Snippet: tt.snippet}}
			}
			assert.Equal(t, tt.expected, sc.inferCompanyType(signals, tt.company))
		})
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	sc := NewScorer(DefaultLexicon())

	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"all positive", "genuine and helpful", 1.0},
		{"all negative", "scam and fraud", -1.0},
		{"balanced", "legit but unpaid", 0.0},
		{"no keywords", "a perfectly ordinary sentence", 0.0},
		{"case insensitive", "TOTAL SCAM", -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, sc.analyzeSentiment(tt.text), 1e-9)
		})
	}
}

func TestScoreStaysInBounds(t *testing.T) {
	sc := NewScorer(DefaultLexicon())

	// Max positive adjustments land exactly on the upper bound.
	signals := []models.Signal{
		{Platform: models.PlatformGlassdoor, SourceURL: "https://g/acme", Rating: fptr(5.0), Snippet: "excellent"},
		{Platform: models.PlatformAmbitionBox, SourceURL: "https://a/acme", Rating: fptr(5.0), Snippet: "trustworthy"},
		{Platform: models.PlatformLinkedIn, SourceURL: "https://l/acme"},
	}

	result := sc.Score(signals, models.CheckRequest{Name: "Acme", Website: "https://acme.example"})

	assert.LessOrEqual(t, result.AuthenticityScore, 100.0)
	assert.GreaterOrEqual(t, result.AuthenticityScore, 0.0)
	assert.InDelta(t, 100.0, result.AuthenticityScore, 1e-9)
}
