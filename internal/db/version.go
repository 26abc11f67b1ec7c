package db

import (
	"github.com/credtrailhq/credtrail/internal/db/migrations"
)

// SchemaVersion reports the highest migration the binary ships, which is
// the file count since migrations are numbered densely from 001. The
// readiness endpoint exposes it so deploy tooling can confirm which schema
// a running instance expects.
func SchemaVersion() int {
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return 0
	}

	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}

	return n
}
