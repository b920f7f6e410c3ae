package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"stock-sentiment-analyzer/internal/types"
)

// Body previews are capped so a handful of articles cannot blow up the
// prompt. Titles are never truncated.
const previewLimit = 200

// instructionTemplate is the fixed output-format contract appended to every
// prompt. Changing it is a configuration change, not a runtime decision.
const instructionTemplate = `Based on this information, provide:
1. A trading signal: STRONG BUY, BUY, HOLD, SELL, or STRONG SELL
2. A confidence level (1-10)
3. Key reasons for your recommendation (2-3 bullet points)
4. Risk factors to consider

Please be objective and consider both positive and negative factors.
Format your response as JSON with the following structure:
{
    "signal": "STRONG BUY/BUY/HOLD/SELL/STRONG SELL",
    "confidence": 1-10,
    "reasons": ["reason1", "reason2", "reason3"],
    "risks": ["risk1", "risk2"],
    "summary": "Brief explanation of the recommendation"
}`

// Compose renders the collected records into the analysis prompt. Pure
// function of its inputs: identical inputs produce byte-identical text.
func Compose(symbol string, items []types.NewsItem, insider, transactions, trends []types.SentimentRecord) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "As a financial analyst, analyze the following information about %s stock and provide a trading recommendation.\n\n", symbol)
	fmt.Fprintf(&sb, "Stock Symbol: %s\n\n", symbol)

	sb.WriteString("Recent News Articles:\n")
	if len(items) == 0 {
		sb.WriteString("(no articles found)\n")
	}
	for i, item := range items {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, item.Title)
		if item.Content != item.Title {
			fmt.Fprintf(&sb, "   %s...\n", preview(item.Content))
		}
		fmt.Fprintf(&sb, "   Source: %s\n\n", item.Source)
	}

	writeRecords(&sb, "Insider Sentiment:", insider)
	writeRecords(&sb, "Insider Transactions:", transactions)
	writeRecords(&sb, "Analyst Recommendation Trends:", trends)

	sb.WriteString("\n")
	sb.WriteString(instructionTemplate)
	return sb.String()
}

// writeRecords serializes opaque records one per line. json.Marshal sorts
// map keys, which keeps the output deterministic.
func writeRecords(sb *strings.Builder, header string, records []types.SentimentRecord) {
	if len(records) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(header)
	sb.WriteString("\n")
	for i, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			continue
		}
		fmt.Fprintf(sb, "%d. %s\n", i+1, string(b))
	}
}

func preview(content string) string {
	r := []rune(content)
	if len(r) <= previewLimit {
		return content
	}
	return string(r[:previewLimit])
}
