// Package domainguard exposes the embedded database migrations used by the
// migrate command and the integration tests.
package domainguard

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
