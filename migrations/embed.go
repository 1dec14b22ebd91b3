// Package migrations embeds the goose SQL migrations for the trips and
// itinerary_items tables. The API server applies them at boot and the
// integration tests apply them from TestMain.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass it to goose.NewProvider so no filesystem path is needed at runtime.
//
//go:embed *.sql
var FS embed.FS
