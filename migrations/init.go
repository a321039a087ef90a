package migrations

import (
	"io/fs"

	phonebook "github.com/goliatone/go-phonebook"
)

func init() {
	coreFS, err := fs.Sub(phonebook.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return
	}
	Register(coreFS)
}
