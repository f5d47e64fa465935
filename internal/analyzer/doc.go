// Package analyzer implements the phishing risk engine: lexical feature
// extraction, brand-impersonation matching against a curated corpus,
// concurrent collection of HTTP/TLS/WHOIS signals through injected
// capabilities, and deterministic weighted aggregation into an explainable
// verdict.
//
// The engine performs no network I/O of its own. All transport lives behind
// the HTTPCapability, TLSCapability, and WhoisCapability interfaces so the
// full pipeline is testable with deterministic fakes.
package analyzer
