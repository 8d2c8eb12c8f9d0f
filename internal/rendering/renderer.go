// Package rendering turns allocated evidence into first-person bullet text.
// The prose itself is delegated to an LLM; this package owns the contract:
// what the model receives, and the structural shape it must return.
package rendering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deathook007/perf-review-tool/internal/llm"
	"github.com/deathook007/perf-review-tool/internal/prompts"
	"github.com/deathook007/perf-review-tool/internal/schemas"
	"github.com/deathook007/perf-review-tool/internal/taxonomy"
	"github.com/deathook007/perf-review-tool/internal/types"
)

// Defaults for the renderer's structural constraints.
const (
	DefaultTimeout     = 60 * time.Second
	DefaultMaxChars    = 200 // character proxy for a 2-line bullet
	DefaultPrefixWords = 3
)

// bulletArraySchema is the shape every section response must satisfy.
const bulletArraySchema = `{
  "type": "array",
  "items": {"type": "string", "minLength": 1},
  "minItems": 5,
  "maxItems": 5
}`

// Renderer generates section bullets through an LLM client under
// deterministic constraints.
type Renderer struct {
	client      llm.Client
	timeout     time.Duration
	maxChars    int
	prefixWords int
}

// NewRenderer creates a Renderer with default constraints.
func NewRenderer(client llm.Client) *Renderer {
	return &Renderer{
		client:      client,
		timeout:     DefaultTimeout,
		maxChars:    DefaultMaxChars,
		prefixWords: DefaultPrefixWords,
	}
}

// WithTimeout overrides the per-section generation timeout.
func (r *Renderer) WithTimeout(d time.Duration) *Renderer {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// WithLimits overrides the bullet length proxy and prefix width.
func (r *Renderer) WithLimits(maxChars, prefixWords int) *Renderer {
	if maxChars > 0 {
		r.maxChars = maxChars
	}
	if prefixWords > 0 {
		r.prefixWords = prefixWords
	}
	return r
}

// MaxChars returns the configured bullet length proxy.
func (r *Renderer) MaxChars() int { return r.maxChars }

// PrefixWords returns the configured opening-prefix width.
func (r *Renderer) PrefixWords() int { return r.prefixWords }

// RenderSection generates the five bullets for one section. usedPrefixes is
// the global list of bullet openings already consumed by earlier sections.
//
// Timeouts are not retried; malformed output gets exactly one stricter
// retry. Both failure modes surface as *RenderError so the caller can
// degrade at section granularity.
func (r *Renderer) RenderSection(ctx context.Context, section taxonomy.Section, meta types.Metadata, slots []types.Slot, usedPrefixes []string) ([]string, error) {
	prompt := r.buildSectionPrompt(section, meta, slots, usedPrefixes)

	raw, err := r.generate(ctx, prompt)
	if err != nil {
		var rerr *RenderError
		if errors.As(err, &rerr) {
			rerr.Section = section.Number
		}
		return nil, err
	}

	bullets, parseErr := parseBullets(raw)
	if parseErr == nil {
		return bullets, nil
	}

	// One retry with a stricter instruction block appended.
	strict := prompt + prompts.MustGet("rendering.json", "section-strict-retry")
	raw, err = r.generate(ctx, strict)
	if err != nil {
		var rerr *RenderError
		if errors.As(err, &rerr) {
			rerr.Section = section.Number
			rerr.Attempts = 2
		}
		return nil, err
	}

	bullets, parseErr = parseBullets(raw)
	if parseErr != nil {
		return nil, &RenderError{
			Section:  section.Number,
			Message:  "response is not a JSON array of 5 bullets",
			Cause:    parseErr,
			Attempts: 2,
		}
	}
	return bullets, nil
}

// generate runs one LLM call under the renderer's timeout.
func (r *Renderer) generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.client.GenerateJSON(callCtx, prompt, llm.TierAdvanced)
	if err != nil {
		// Cancellation is not a timeout: only a blown deadline sets the flag.
		timedOut := errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(callCtx.Err(), context.DeadlineExceeded)
		return "", &RenderError{
			Timeout:  timedOut,
			Message:  "generation call failed",
			Cause:    err,
			Attempts: 1,
		}
	}
	return raw, nil
}

// parseBullets validates the structural contract and decodes the bullets.
func parseBullets(raw string) ([]string, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if err := schemas.ValidateJSONString(bulletArraySchema, cleaned); err != nil {
		return nil, err
	}

	var bullets []string
	if err := json.Unmarshal([]byte(cleaned), &bullets); err != nil {
		return nil, err
	}

	for i, b := range bullets {
		bullets[i] = strings.TrimSpace(b)
		if bullets[i] == "" {
			return nil, fmt.Errorf("bullet %d is empty", i+1)
		}
	}
	return bullets, nil
}

// buildSectionPrompt assembles the full request: style profile, the five
// slots (metric text quoted verbatim), and the global prefix exclusions.
func (r *Renderer) buildSectionPrompt(section taxonomy.Section, meta types.Metadata, slots []types.Slot, usedPrefixes []string) string {
	var sb strings.Builder

	intro := prompts.MustGet("rendering.json", "section-intro")
	sb.WriteString(prompts.Format(intro, map[string]string{
		"SectionName": section.Name,
		"Role":        valueOr(meta.Role, "engineer"),
		"Team":        valueOr(meta.Team, "the team"),
		"Tone":        section.Style.Tone,
		"Structure":   section.Style.Structure,
	}))

	for _, g := range section.Style.Guidance {
		sb.WriteString("- " + g + "\n")
	}

	sb.WriteString(prompts.MustGet("rendering.json", "section-evidence-header"))
	for i, slot := range slots {
		data := map[string]string{"Index": fmt.Sprintf("%d", i+1)}
		switch {
		case slot.Evidence != nil && slot.Evidence.IsMetric():
			data["Context"] = slot.Evidence.Context
			data["RawText"] = slot.Evidence.RawText
			sb.WriteString(prompts.Format(prompts.MustGet("rendering.json", "section-evidence-metric"), data))
		case slot.Evidence != nil:
			data["Context"] = slot.Evidence.Context
			data["RawText"] = slot.Evidence.RawText
			sb.WriteString(prompts.Format(prompts.MustGet("rendering.json", "section-evidence-keyword"), data))
		default:
			data["Hint"] = slot.Hint
			sb.WriteString(prompts.Format(prompts.MustGet("rendering.json", "section-evidence-qualitative"), data))
		}
	}

	used := "(none yet)"
	if len(usedPrefixes) > 0 {
		used = strings.Join(usedPrefixes, "; ")
	}
	reqs := prompts.MustGet("rendering.json", "section-requirements")
	sb.WriteString(prompts.Format(reqs, map[string]string{
		"MaxChars":     fmt.Sprintf("%d", r.maxChars),
		"PrefixWords":  fmt.Sprintf("%d", r.prefixWords),
		"UsedPrefixes": used,
	}))

	return sb.String()
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
