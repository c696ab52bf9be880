// Package lookupcache persists raw index responses so that repeated runs over
// the same bibliography do not query the index again.
//
// Store implements dblp.Cache on top of GORM. Documents are keyed by URL and
// expire after a configurable TTL. Read and write failures never fail a
// lookup: they are logged and the request goes to the index as usual.
package lookupcache
