// Package analysis stores diagnostic analysis records and serves aggregate
// statistics over them: per-category counts (oncology vs. neurology, matched
// against fixed diagnosis vocabularies) and the full history, newest first.
package analysis
