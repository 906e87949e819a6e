package eval

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/codemap/pkg/errors"
)

// archetypeFile is the TOML wire form of an archetype list:
//
//	[[user]]
//	id = "quick-glancer"
//	name = "Quick Glancer"
//	goal = "..."
//
//	[[user.constraint]]
//	name = "blobs-clearly-separated"
//	fact = "blobSeparation.minClearance"
//	op = ">"
//	threshold = 20.0
//	severity = "critical"
type archetypeFile struct {
	Users []Archetype `toml:"user"`
}

// ReadArchetypes decodes and validates a TOML archetype list.
func ReadArchetypes(r io.Reader) ([]Archetype, error) {
	var file archetypeFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArchetype, err, "parse archetype config")
	}
	if len(file.Users) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArchetype, "archetype config defines no users")
	}
	seen := make(map[string]bool, len(file.Users))
	for i := range file.Users {
		a := &file.Users[i]
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if seen[a.ID] {
			return nil, errors.New(errors.ErrCodeInvalidArchetype, "duplicate archetype id %q", a.ID)
		}
		seen[a.ID] = true
	}
	return file.Users, nil
}

// LoadArchetypes reads and validates a TOML archetype file from disk.
func LoadArchetypes(path string) ([]Archetype, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "archetype file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open archetype file %s", path)
	}
	defer f.Close()
	return ReadArchetypes(f)
}
