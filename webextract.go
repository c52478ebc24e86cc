// Package webextract turns captured web pages of unknown or
// untrustworthy declared type and encoding into clean, structured
// content for downstream text analysis. It resolves the real character
// encoding, sniffs the real content type, walks the parsed element
// tree exactly once to collect title, headings, visible text, links,
// resources and structural statistics, and separates boilerplate from
// genuine article text.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or concern
// (e.g., charset/, sniff/, dom/, density/, sqlite/).
package webextract
