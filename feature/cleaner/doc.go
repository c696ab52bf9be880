// Package cleaner exposes BibTeX cleaning over HTTP.
//
// POST /clean takes a BibTeX document as the request body and answers with
// the cleaned file, the cross-referenced venues and a summary of the run.
// GET /search runs a single index search. Ambiguous matches cannot be asked
// about over HTTP, so the service settles them with a fixed policy.
package cleaner
