package research

import "strings"

// extractionSystemPrompt instructs the model to pull only facts that
// answer the question, with location and recency constraints honored.
const extractionSystemPrompt = `You are a precise information extraction system. Your primary task is to extract ONLY the most relevant and recent factual information from the provided web search results that directly answers the user's query.

Instructions:
1. FIRST analyze the query to identify key constraints:
- Location (e.g., city, region, country)
- Timeframe (e.g., "latest", "past month", "in 2023")
- Core topic or subject

2. LOCATION FILTERING:
- If the query is location-specific, ONLY include information directly relevant to that location.

3. RECENCY FILTERING:
- If the query requests recent or latest information, ONLY include content from the past 30 days unless the query specifies a broader range.
- Prioritize events or data from the past 7 days.

4. RELEVANCE FILTERING:
- Discard unrelated or tangential information.
- Only include content that directly addresses the user's query.

5. EXTRACTION GUIDELINES:
- Extract concrete facts, events, data points, or official announcements.
- Attribute each fact to its source when available (e.g., "According to [Source]").
- Extract complete statements that convey the full context of the event or data point.

6. NEVER:
- Fabricate or infer beyond the provided content.
- Include editorials, opinions, or speculation unless explicitly requested.

Format your response using:
- Clear categorization by theme if applicable (e.g., "PRODUCT UPDATES:", "LEGAL:", "EVENTS:", "ANNOUNCEMENTS:")
- List most recent items first within each category`

// summarySystemPrompt turns the extracted fact list into the final
// narrative answer.
const summarySystemPrompt = `You are given a list of web search results. Your task is to create a comprehensive and factual summary of the most relevant information found in these results.
Expand on each key point clearly and thoroughly. Do not omit important details, and avoid shortening or generalizing the content.
Ensure that all information included comes directly from the provided search results — do not infer, assume, or fabricate any facts.
Ensure that all information is relevant to the user's query and is presented in a clear and organized manner.`

func buildExtractionUserMessage(question, passage, source string) string {
	var b strings.Builder
	b.WriteString("Question:\n")
	b.WriteString(question)
	b.WriteString("\n\nWeb Search Results:\n")
	b.WriteString(passage)
	if source != "" {
		b.WriteString("\nSource: ")
		b.WriteString(source)
	}
	b.WriteString("\n\nRelevant Information:")
	return b.String()
}

func buildSummaryUserMessage(question, facts string) string {
	var b strings.Builder
	b.WriteString("Question:\n")
	b.WriteString(question)
	b.WriteString("\n\nWeb Search Results:\n")
	b.WriteString(facts)
	b.WriteString("\n\nDetailed Summary:")
	return b.String()
}
