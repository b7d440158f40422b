package chat

import (
	"regexp"
	"strings"
)

// Signal is the classifier's view of one message. It is derived purely from
// the text and never persisted.
type Signal struct {
	IsMarketQuery      bool
	IsEducationalQuery bool
	IsNewsQuery        bool
	IsCompanySpecific  bool
	Confidence         float64
}

// Relevance vocabulary, grouped by what the term signals. The classifier
// favors recall over precision: a false positive only adds possibly-irrelevant
// headlines to the prompt, a false negative silently omits context the answer
// needed. Generic words like "stock" over-trigger on purely educational
// questions and that tradeoff is deliberate (pinned in the tests).
var contextVocabulary = [][]string{
	// market / instrument
	{
		"stock", "stocks", "shares", "share price", "sensex", "nifty",
		"nasdaq", "dow jones", "s&p", "market", "crypto", "bitcoin",
		"ethereum", "gold price", "rupee", "bond yield", "ipo",
	},
	// temporal recency
	{
		"today", "right now", "currently", "current", "this week",
		"latest", "recent", "recently", "yesterday",
	},
	// news genre
	{
		"news", "headline", "headlines", "announcement", "announced",
		"breaking", "update",
	},
	// corporate events
	{
		"earnings", "quarterly results", "merger", "acquisition",
		"dividend", "buyback", "layoffs", "stock split",
	},
	// macro / policy
	{
		"inflation", "interest rate", "rbi", "repo rate", "fed",
		"federal reserve", "gdp", "recession", "union budget",
		"fiscal", "monetary policy", "unemployment",
	},
}

var contextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)what'?s happening`),
	regexp.MustCompile(`(?i)what is happening`),
	regexp.MustCompile(`(?i)should i (buy|sell|invest)`),
	regexp.MustCompile(`(?i)is (it|now|this) a good time`),
	regexp.MustCompile(`(?i)how (is|are) .+ (performing|doing)`),
	regexp.MustCompile(`(?i)(stock|share) price of`),
	regexp.MustCompile(`(?i)worth (buying|investing)`),
	regexp.MustCompile(`(?i)market (outlook|forecast|prediction|condition)`),
	regexp.MustCompile(`(?i)what (happened|changed) (in|with|to)`),
	regexp.MustCompile(`(?i)any (news|update|updates) (on|about)`),
	regexp.MustCompile(`(?i)latest (on|about)`),
	regexp.MustCompile(`(?i)how did .+ close`),
	regexp.MustCompile(`(?i)going (up|down)`),
	regexp.MustCompile(`(?i)bull(ish)? or bear(ish)?`),
	regexp.MustCompile(`(?i)\bstock performing\b`),
}

// Confidence model: the first hit in each group adds that group's weight.
// Four groups, so the sum never exceeds 0.8, but the cap stays as a guard
// against future weight changes.
const (
	marketWeight      = 0.20
	educationalWeight = 0.15
	newsWeight        = 0.25
	companyWeight     = 0.20
)

var marketKeywords = []string{
	"stock", "market", "invest", "trading", "portfolio",
	"mutual fund", "etf", "sensex", "nifty",
}

var educationalKeywords = []string{
	"what is", "what are", "explain", "how does", "basics",
	"difference between", "meaning of", "learn",
}

var newsKeywords = []string{
	"news", "latest", "today", "current", "recent", "happening", "update",
}

var companyKeywords = []string{
	"apple", "google", "microsoft", "tesla", "amazon", "nvidia",
	"reliance", "tata", "infosys", "hdfc", "adani", "zomato",
}

var tickerPattern = regexp.MustCompile(`\b[A-Z]{2,5}\b`)

// Analyze scores the question type from keyword groups alone.
func Analyze(text string) Signal {
	var sig Signal
	if strings.TrimSpace(text) == "" {
		return sig
	}

	lower := strings.ToLower(text)

	if containsAny(lower, marketKeywords) {
		sig.IsMarketQuery = true
		sig.Confidence += marketWeight
	}
	if containsAny(lower, educationalKeywords) {
		sig.IsEducationalQuery = true
		sig.Confidence += educationalWeight
	}
	if containsAny(lower, newsKeywords) {
		sig.IsNewsQuery = true
		sig.Confidence += newsWeight
	}
	if containsAny(lower, companyKeywords) || tickerPattern.MatchString(text) {
		sig.IsCompanySpecific = true
		sig.Confidence += companyWeight
	}

	if sig.Confidence > 1.0 {
		sig.Confidence = 1.0
	}
	return sig
}

// RequiresContext decides whether answering the message needs current
// market/news context.
func RequiresContext(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	lower := strings.ToLower(text)
	for _, group := range contextVocabulary {
		if containsAny(lower, group) {
			return true
		}
	}

	for _, p := range contextPatterns {
		if p.MatchString(text) {
			return true
		}
	}

	sig := Analyze(text)
	if sig.IsNewsQuery && sig.Confidence > 0.3 {
		return true
	}
	if sig.IsMarketQuery && sig.Confidence > 0.4 {
		return true
	}

	return false
}

func containsAny(lower string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
