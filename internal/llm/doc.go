// Package llm implements the Generator contract for each supported
// language-model provider.
//
// Supported providers: Anthropic (Claude), OpenAI (GPT), Google (Gemini),
// and Ollama for local models.
//
// All providers share a common retry helper with exponential back-off and
// rate-limit handling. HTTP clients are injected via a transport field so
// that tests can redirect calls to local httptest servers without making
// live API requests.
//
// The contract is deliberately narrow: a prompt in, free text out. Stages
// that expect structured output parse it defensively on their side; this
// package only handles transport, auth, and retries. Use [New] to obtain a
// [Generator] by provider name.
package llm
