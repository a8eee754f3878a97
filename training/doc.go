// Package training synthesizes sales-training materials from product
// knowledge: quizzes, scenarios, objection handlers, competitive
// comparisons, talking points, and role-play scripts, plus personalized
// development plans built from usage analytics.
//
// Every category resolves independently: a failed or unparsable generation
// call substitutes that category's hand-authored fallback items, so a
// synthesis run degrades but never fails outright.
package training
