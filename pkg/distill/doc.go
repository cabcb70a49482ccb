// Package distill turns brain-dump text into a categorized action plan.
//
// # Overview
//
// The package owns the domain half of the distillation pipeline:
//
//   - Prompt building: BuildPrompt renders the raw text into the fixed
//     instruction template sent to the completion service.
//   - Normalization: Normalizer converts free-form model output into a
//     strictly shaped Plan, or a typed failure.
//
// Transport concerns (input guard, rate limiting, the completion call
// itself) live in pkg/proxy/handlers, pkg/ratelimit and pkg/completion.
//
// # Normalization
//
// Model output is treated as untrusted. The normalizer tolerates prose and
// code fences around the JSON object, fills in missing titles, and always
// returns a plan with at least one item:
//
//	n := distill.NewNormalizer()
//	plan, err := n.Normalize(raw)
//	switch {
//	case errors.Is(err, distill.ErrMalformedOutput):
//	    // plan holds the processing-error fallback
//	case errors.Is(err, distill.ErrInvalidStructure):
//	    // no usable plan
//	}
package distill
