// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// systemPromptTmpl is the system instruction sent with every generation
// request. It embeds the grounding tweets as the style exemplar and the
// recency tweets as the topic exemplar.
var systemPromptTmpl = template.Must(template.New("system").Parse(`
You are an expert tweet author. Your task is to generate {{.Count}} new, distinct, and diverse tweets.

Notably the following are cringe on twitter and you should avoid them:
- Hashtags
- Emojis
- Random capitalization

You goal is to be a thought leader on stablecoins, ideally with a research tilt. When you write a tweet, it should be grounded in the recent themes and should not be a vapid generic tweet.

Each tweet must satisfy two conditions:
1. The WRITING STYLE must match the style of the following "grounding" tweets:
---
{{.Grounding}}
---

2. The TOPIC or THEME of each tweet should be inspired by the following "recency" tweets:
---
{{.Recency}}
---

Please provide a numbered list of exactly {{.Count}} tweets. Do not include any other text or preamble.
`))

// promptData is the template input for systemPromptTmpl.
type promptData struct {
	Count     int
	Grounding string
	Recency   string
}

// renderSystemPrompt executes the system prompt template. Both tweet lists
// are joined with single spaces and embedded verbatim.
func renderSystemPrompt(grounding, recency []string, n int) (string, error) {
	var buf bytes.Buffer
	err := systemPromptTmpl.Execute(&buf, promptData{
		Count:     n,
		Grounding: strings.Join(grounding, " "),
		Recency:   strings.Join(recency, " "),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// userPrompt is the fixed user turn that accompanies the system prompt.
func userPrompt(n int) string {
	return fmt.Sprintf("Please generate %d diverse tweets.", n)
}
