package analyzer

import (
	"encoding/json"
	"math"
	"strings"

	"stock-sentiment-analyzer/internal/types"
)

// summaryLimit bounds the raw-reply prefix carried into fallback summaries.
const summaryLimit = 500

// recommendationPayload is the wire shape of the model's JSON answer.
// Confidence is decoded as a float because models routinely emit "7.0".
type recommendationPayload struct {
	Signal     string   `json:"signal"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
	Risks      []string `json:"risks"`
	Summary    string   `json:"summary"`
}

// Extract recovers a structured recommendation from a free-text model reply.
// It never fails: every malformed input maps to a well-formed fallback.
//
// The reply may wrap the requested JSON in prose or markdown fences, so the
// slice between the first '{' and the last '}' is treated as the object.
// Nested or multiple objects in the reply would slice incorrectly; in
// practice the model's only braces are the requested object.
func Extract(raw string) types.Recommendation {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		// The model refused the format entirely.
		return types.Recommendation{
			Signal:     types.SignalUnknown,
			Confidence: 0,
			Reasons:    []string{"Analysis completed but format error occurred"},
			Risks:      []string{"Format error in AI response"},
			Summary:    prefix(raw, summaryLimit),
		}
	}

	payload := recommendationPayload{
		Signal:  types.SignalUnknown,
		Summary: "No summary available",
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		// Braces found but the object is broken: the model did attempt an
		// answer, so degrade to a neutral HOLD instead of UNKNOWN.
		return types.Recommendation{
			Signal:     types.SignalHold,
			Confidence: 5,
			Reasons:    []string{"Analysis completed but format error occurred"},
			Risks:      []string{"Unable to parse detailed analysis"},
			Summary:    prefix(raw, summaryLimit),
		}
	}

	rec := types.Recommendation{
		Signal:     strings.ToUpper(strings.TrimSpace(payload.Signal)),
		Confidence: int(math.Round(payload.Confidence)),
		Reasons:    payload.Reasons,
		Risks:      payload.Risks,
		Summary:    payload.Summary,
	}
	// Out-of-enum signals pass through; the UI falls back to a neutral badge.
	if rec.Signal == "" {
		rec.Signal = types.SignalUnknown
	}
	if rec.Reasons == nil {
		rec.Reasons = []string{}
	}
	if rec.Risks == nil {
		rec.Risks = []string{}
	}
	if rec.Summary == "" {
		rec.Summary = "No summary available"
	}
	return rec
}

// ErrorRecommendation converts a pipeline failure (transport, auth, anything
// unexpected around the completion call) into a displayable recommendation.
func ErrorRecommendation(err error) types.Recommendation {
	msg := err.Error()
	return types.Recommendation{
		Signal:     types.SignalError,
		Confidence: 0,
		Reasons:    []string{"Error during analysis: " + msg},
		Risks:      []string{"API error or connection issue"},
		Summary:    msg,
	}
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
