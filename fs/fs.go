// Package appfs exposes the embedded static files needed at runtime:
// email/export templates, seed tables and SQL migrations.
package appfs

import "embed"

//go:embed all:assets migrations
var FS embed.FS
