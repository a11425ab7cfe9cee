// Package seo turns video metadata into SEO artifacts and thumbnail concepts
// through three LLM round-trips: content analysis, SEO metadata and
// thumbnail design.
//
// Model output is never trusted structurally. Parse extracts the first JSON
// object it can find, the tag normalizer deduplicates and tops up tags to
// exactly domain.TagCount, and anything missing or malformed is filled from
// localized fallback tables. A run therefore always yields a complete
// PipelineResult unless the analysis stage fails under the AnalysisFail
// policy or no gateway credential is configured.
package seo
