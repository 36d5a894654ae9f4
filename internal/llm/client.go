// Package llm provides a provider-agnostic interface for asking an LLM which
// website domain belongs to a company name. The answer is free text; callers
// are expected to extract the domain defensively.
package llm

import "context"

// systemPrompt is shared by every provider so they answer in the same shape.
const systemPrompt = `You resolve company names to their primary website domain.
Given a company name, return ONLY the domain (e.g. "stripe.com"). No explanation, no quotes, just the bare domain.`

// maxAnswerTokens keeps the answer to a bare domain.
const maxAnswerTokens = 64

// Client is the interface for LLM providers that can name a company's domain.
// Both Anthropic (Claude) and OpenAI implement it; config decides which one
// is used.
//
// Go interface design tip: keep interfaces small. The bigger the interface,
// the harder it is to implement and fake in tests.
type Client interface {
	// LookupDomain returns the model's raw text answer for companyName.
	LookupDomain(ctx context.Context, companyName string) (string, error)
	ProviderName() string
	ModelName() string
}
