// Package assistant handles interactive requests against the project index.
//
// Each request is classified by one generation call into UPDATE, QUERY or
// EMAIL. Classification is substring containment over the upper-cased model
// output, checked for UPDATE first and then EMAIL; anything else is a query.
//
// Updates require a project id. The stored record is fetched, the input is
// appended to its details line, and the record is re-embedded and written
// back whole, so ingested metadata survives. Updates to one project are
// serialized within a process.
//
// Queries and email drafts build context either from the named project or
// from the two nearest records by similarity, then issue a single generation
// call whose system instruction depends on the intent.
package assistant
