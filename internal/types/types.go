package types

// Signal tokens emitted by the extractor. UNKNOWN and ERROR are sentinels
// for degraded results, not model outputs.
const (
	SignalStrongBuy  = "STRONG BUY"
	SignalBuy        = "BUY"
	SignalHold       = "HOLD"
	SignalSell       = "SELL"
	SignalStrongSell = "STRONG SELL"
	SignalUnknown    = "UNKNOWN"
	SignalError      = "ERROR"
)

type NewsItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
	Source  string `json:"source"`
}

// SentimentRecord is an opaque structured record from the insider-sentiment
// or recommendation-trend feeds, passed through verbatim.
type SentimentRecord map[string]any

type Recommendation struct {
	Signal     string   `json:"signal"`
	Confidence int      `json:"confidence"`
	Reasons    []string `json:"reasons"`
	Risks      []string `json:"risks"`
	Summary    string   `json:"summary"`
}

// SourceStatus records the outcome of one collector during a run.
type SourceStatus struct {
	Source  string `json:"source"`
	OK      bool   `json:"ok"`
	Count   int    `json:"count"`
	Message string `json:"message,omitempty"`
}

// Analysis bundles one run's recommendation with the raw data that produced
// it, for display.
type Analysis struct {
	Symbol         string            `json:"symbol"`
	Recommendation Recommendation    `json:"recommendation"`
	Articles       []NewsItem        `json:"articles"`
	Insider        []SentimentRecord `json:"insider,omitempty"`
	Transactions   []SentimentRecord `json:"transactions,omitempty"`
	Trends         []SentimentRecord `json:"trends,omitempty"`
	Sources        []SourceStatus    `json:"sources"`
}
