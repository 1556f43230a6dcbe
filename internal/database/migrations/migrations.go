package migrations

import "embed"

// Migrations содержит SQL файлы миграций, встроенные в бинарник.
//
//go:embed *.sql
var Migrations embed.FS
