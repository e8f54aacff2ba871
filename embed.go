package newlifejournal

import "embed"

// MigrationsFS embeds the SQL migrations so the binary can migrate on startup.
//
//go:embed migrations
var MigrationsFS embed.FS
