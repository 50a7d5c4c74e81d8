// internal/models/company.go
package models

import (
	"fmt"
	"time"
)

// Platform identifies the external source a signal came from.
type Platform string

const (
	PlatformReddit      Platform = "reddit"
	PlatformX           Platform = "x"
	PlatformGlassdoor   Platform = "glassdoor"
	PlatformAmbitionBox Platform = "ambitionbox"
	PlatformLinkedIn    Platform = "linkedin"
	PlatformManual      Platform = "manual"
)

// Sentiment is a coarse per-signal sentiment label supplied by a source.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentMixed    Sentiment = "mixed"
	SentimentNeutral  Sentiment = "neutral"
)

// RiskTier is the coarse scam-risk classification derived from score and flags.
type RiskTier string

const (
	RiskLow     RiskTier = "low"
	RiskMedium  RiskTier = "medium"
	RiskHigh    RiskTier = "high"
	RiskUnknown RiskTier = "unknown"
)

// CompanyType is the inferred business category of a company.
type CompanyType string

const (
	TypeTraining   CompanyType = "training"
	TypeEdTech     CompanyType = "edtech"
	TypeStaffing   CompanyType = "staffing"
	TypeITServices CompanyType = "it_services"
)

// Warning flag tokens attached to an Insight.
const (
	FlagNoExternalSignals          = "no_external_signals_found"
	FlagLimitedExternalSignals     = "limited_external_signals"
	FlagNoLinkedInPage             = "no_linkedin_page"
	FlagNoGlassdoorPresence        = "no_glassdoor_presence"
	FlagNoWebsiteProvided          = "no_website_provided"
	FlagCourseMarketedAsInternship = "course_marketed_as_internship"
)

// Signal is one observation about a company from one external source.
// Every optional field may legitimately be absent; sources are unreliable.
type Signal struct {
	Platform    Platform  `json:"platform"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title,omitempty"`
	Snippet     string    `json:"snippet,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	ReviewCount *int      `json:"reviewCount,omitempty"`
	Sentiment   Sentiment `json:"sentiment,omitempty"`
}

var validPlatforms = map[Platform]bool{
	PlatformReddit:      true,
	PlatformX:           true,
	PlatformGlassdoor:   true,
	PlatformAmbitionBox: true,
	PlatformLinkedIn:    true,
	PlatformManual:      true,
}

var validSentiments = map[Sentiment]bool{
	SentimentPositive: true,
	SentimentNegative: true,
	SentimentMixed:    true,
	SentimentNeutral:  true,
}

// Validate checks field bounds. Absence is always valid.
func (s Signal) Validate() error {
	if !validPlatforms[s.Platform] {
		return fmt.Errorf("invalid platform %q", s.Platform)
	}
	if s.Rating != nil && (*s.Rating < 0.0 || *s.Rating > 5.0) {
		return fmt.Errorf("rating %.2f out of range [0,5]", *s.Rating)
	}
	if s.ReviewCount != nil && *s.ReviewCount < 0 {
		return fmt.Errorf("reviewCount %d is negative", *s.ReviewCount)
	}
	if s.Sentiment != "" && !validSentiments[s.Sentiment] {
		return fmt.Errorf("invalid sentiment %q", s.Sentiment)
	}
	return nil
}

// Insight is the complete computed verdict for one company at one point
// in time. Refresh runs supersede the record under the same canonical
// key; an Insight is never mutated after construction.
type Insight struct {
	Name              string      `json:"name"`
	CanonicalKey      string      `json:"canonicalKey"`
	Website           string      `json:"website,omitempty"`
	AuthenticityScore float64     `json:"authenticityScore"`
	RiskTier          RiskTier    `json:"riskTier"`
	CompanyType       CompanyType `json:"companyType,omitempty"`
	Flags             []string    `json:"flags"`
	Signals           []Signal    `json:"signals"`
	ComputedAt        time.Time   `json:"computedAt"`
}

// HasFlag reports whether the insight carries the given warning token.
func (i *Insight) HasFlag(flag string) bool {
	for _, f := range i.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// CheckRequest is the input to the pipeline. Not persisted.
type CheckRequest struct {
	Name     string `json:"name"`
	Website  string `json:"website,omitempty"`
	Country  string `json:"country,omitempty"`
	Category string `json:"category,omitempty"`
}
