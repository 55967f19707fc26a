package value

import (
	"fmt"
	"strings"
)

// DatabaseID identifies the database a Reference is scoped to, matching
// original_source/Firestore/core/src/firebase/firestore/model/database_id.h:
// a (project-id, database-id) pair that orders lexicographically, project
// first.
type DatabaseID struct {
	ProjectID  string
	DatabaseID string
}

// Compare orders two DatabaseIDs by (project-id, database-id).
func (d DatabaseID) Compare(o DatabaseID) Ordering {
	if c := strings.Compare(d.ProjectID, o.ProjectID); c != 0 {
		return orderingFromInt(c)
	}
	return orderingFromInt(strings.Compare(d.DatabaseID, o.DatabaseID))
}

func (d DatabaseID) String() string {
	return fmt.Sprintf("projects/%s/databases/%s", d.ProjectID, d.DatabaseID)
}

// Reference identifies a document by database and path. Path is stored as
// already-split segments (collection, document, collection, document, ...);
// callers building a Reference from a slash-joined path should split it
// first.
type Reference struct {
	Database DatabaseID
	Path     []string
}

// Compare orders references database-id first, then path segment-wise, per
// §4.1.
func (r Reference) Compare(o Reference) Ordering {
	if c := r.Database.Compare(o.Database); c != OrderEqual {
		return c
	}
	return compareStringSlices(r.Path, o.Path)
}

// Equal reports reference equality: same database-id and same path.
func (r Reference) Equal(o Reference) bool {
	return r.Compare(o) == OrderEqual
}

func (r Reference) String() string {
	return fmt.Sprintf("%s/documents/%s", r.Database.String(), strings.Join(r.Path, "/"))
}

func compareStringSlices(a, b []string) Ordering {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return orderingFromInt(c)
		}
	}
	switch {
	case len(a) < len(b):
		return OrderLess
	case len(a) > len(b):
		return OrderGreater
	default:
		return OrderEqual
	}
}

func orderingFromInt(c int) Ordering {
	switch {
	case c < 0:
		return OrderLess
	case c > 0:
		return OrderGreater
	default:
		return OrderEqual
	}
}
