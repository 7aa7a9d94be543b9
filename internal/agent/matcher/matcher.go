// internal/agent/matcher/matcher.go
package matcher

import (
	"strings"

	"vendor-analytics-agent/internal/common/errors"
	"vendor-analytics-agent/internal/common/logger"
	"vendor-analytics-agent/internal/models"
)

const (
	baseConfidence = 0.70
	maxConfidence  = 0.95
	priorityWeight = 0.1
)

// Match is a scored classification of a query onto an intent.
type Match struct {
	Intent         models.Intent `json:"intent"`
	Confidence     float64       `json:"confidence"`
	MatchedPattern string        `json:"matchedPattern"`
}

// Matcher classifies free text against the declarative rule catalog.
type Matcher struct {
	rules         []Rule
	minConfidence float64
	logger        logger.Logger
}

func New(minConfidence float64, log logger.Logger) *Matcher {
	return &Matcher{
		rules:         Catalog(),
		minConfidence: minConfidence,
		logger:        log,
	}
}

// Match scores every trigger phrase against the query and returns the best
// scoring intent. A longer phrase relative to the query and a higher group
// priority both raise confidence; the score is capped at 0.95 so no phrase
// match ever claims certainty. Queries whose best score stays below the
// configured floor are rejected with UNKNOWN_INTENT.
func (m *Matcher) Match(query string) (*Match, error) {
	normalized := normalize(query)
	if normalized == "" {
		return nil, errors.NewUnknownIntentError(query)
	}

	var best *Match
	for _, rule := range m.rules {
		for _, pattern := range rule.Patterns {
			if !strings.Contains(normalized, pattern) {
				continue
			}

			lengthScore := float64(len(pattern)) / float64(len(normalized))
			confidence := baseConfidence + lengthScore + priorityWeight*float64(rule.Priority)
			if confidence > maxConfidence {
				confidence = maxConfidence
			}

			// Strict comparison keeps the earlier catalog entry on ties.
			if best == nil || confidence > best.Confidence {
				best = &Match{
					Intent:         rule.Intent,
					Confidence:     confidence,
					MatchedPattern: pattern,
				}
			}
		}
	}

	if best == nil || best.Confidence < m.minConfidence {
		m.logger.Debug("no intent cleared the confidence floor", map[string]interface{}{
			"query": query,
			"floor": m.minConfidence,
		})
		return nil, errors.NewUnknownIntentError(query)
	}

	m.logger.Debug("intent matched", map[string]interface{}{
		"intent":     string(best.Intent),
		"pattern":    best.MatchedPattern,
		"confidence": best.Confidence,
	})
	return best, nil
}

// normalize lowercases and collapses runs of whitespace to single spaces.
func normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
