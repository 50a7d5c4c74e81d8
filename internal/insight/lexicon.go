// internal/insight/lexicon.go
package insight

import "knowyourcompany/internal/common/config"

// Lexicon holds the keyword tables driving sentiment analysis and
// company-type inference. The tables are data, not control flow: they
// can be replaced wholesale from configuration without touching the
// scoring arithmetic.
type Lexicon struct {
	Positive   []string
	Negative   []string
	Training   []string
	EdTech     []string
	Staffing   []string
	ITServices []string
	Internship []string
}

// DefaultLexicon returns the built-in keyword tables.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Negative: []string{
			"scam", "fraud", "fake", "unpaid", "no stipend",
			"certificate only", "pay to", "waste of time", "regret",
			"never hire", "avoid", "terrible", "worst", "ripoff",
			"deceptive", "misleading", "false promises",
		},
		Positive: []string{
			"good learning", "helpful", "supportive", "got stipend",
			"valuable", "recommended", "genuine", "legit", "trustworthy",
			"professional", "excellent", "great experience", "worth it",
		},
		Training:   []string{"training", "course", "bootcamp", "academy", "institute", "coaching"},
		EdTech:     []string{"edtech", "online learning", "e-learning", "digital learning", "skill"},
		Staffing:   []string{"recruitment", "staffing", "manpower", "placement", "placement agency"},
		ITServices: []string{"it services", "software development", "consulting", "tech solutions"},
		Internship: []string{"internship", "placement"},
	}
}

// LexiconFromConfig overlays configured keyword lists onto the
// defaults. Empty config lists keep the built-in table.
func LexiconFromConfig(cfg config.ScoringConfig) Lexicon {
	lex := DefaultLexicon()
	if len(cfg.PositiveKeywords) > 0 {
		lex.Positive = cfg.PositiveKeywords
	}
	if len(cfg.NegativeKeywords) > 0 {
		lex.Negative = cfg.NegativeKeywords
	}
	if len(cfg.TrainingKeywords) > 0 {
		lex.Training = cfg.TrainingKeywords
	}
	if len(cfg.EdTechKeywords) > 0 {
		lex.EdTech = cfg.EdTechKeywords
	}
	if len(cfg.StaffingKeywords) > 0 {
		lex.Staffing = cfg.StaffingKeywords
	}
	if len(cfg.ITServicesKeywords) > 0 {
		lex.ITServices = cfg.ITServicesKeywords
	}
	if len(cfg.InternshipKeywords) > 0 {
		lex.Internship = cfg.InternshipKeywords
	}
	return lex
}
