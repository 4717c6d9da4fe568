// Package memory implements the tiered memory subsystem behind the
// recall agent: a token-bounded short-term log of recent video
// analyses, a working-memory layer that promotes repeated observations
// from hypotheses to established facts, and a long-term profile
// distilled by keyword extraction.
//
// Manager is the single entry point. It owns all three tiers behind
// one mutex, persists each tier through a Store after every mutation,
// and answers the query operations the agent tools expose: topic
// queries, hypothesis analysis, focused insights, short-term search,
// and video comparison.
package memory
