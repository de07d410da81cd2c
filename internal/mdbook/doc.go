// Package mdbook implements the JSON contract between mdBook and an external preprocessor.
//
// mdBook writes `[context, book]` to the preprocessor's stdin and reads the
// processed book back from stdout. Only the fields this module edits are
// modelled as Go fields; everything else is carried as raw JSON so that a
// newer host's additions survive the round trip.
package mdbook
