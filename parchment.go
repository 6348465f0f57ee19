// Package parchment turns heterogeneous source documents (packaged e-book
// archives, word-processor documents, PDFs, Markdown text, scraped web pages
// and video transcripts) into one uniform model: a metadata record, a
// hierarchical table of contents, a flat linear reading order, and an
// on-demand per-section HTML renderer with safe, injectable output.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Format implementations live in subdirectories
// (epub/, docx/, pdf/, markdown/, web/, transcript/).
package parchment
