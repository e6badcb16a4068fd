package split

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/normalize"
)

// DoctorIndex resolves visits to doctors from one snapshot of doctor records.
// Doctors keep the order they were given in; name matching returns the first
// doctor in that order at the highest-precedence rule that matches.
type DoctorIndex struct {
	doctors []model.Doctor
	byID    map[uuid.UUID]int
	norm    []string
	first   []string
}

// NewDoctorIndex builds an index over doctors. The slice is not copied.
func NewDoctorIndex(doctors []model.Doctor) *DoctorIndex {
	x := &DoctorIndex{
		doctors: doctors,
		byID:    make(map[uuid.UUID]int, len(doctors)),
		norm:    make([]string, len(doctors)),
		first:   make([]string, len(doctors)),
	}
	for i, d := range doctors {
		if d.ID != uuid.Nil {
			x.byID[d.ID] = i
		}
		x.norm[i] = normalize.NormalizeDoctorName(d.Name)
		x.first[i] = normalize.FirstToken(x.norm[i])
	}
	return x
}

// Len returns the number of doctors in the snapshot.
func (x *DoctorIndex) Len() int { return len(x.doctors) }

// Doctor returns the i-th doctor of the snapshot.
func (x *DoctorIndex) Doctor(i int) *model.Doctor { return &x.doctors[i] }

// Resolve finds the doctor for a visit: by stored doctor id first, then by name.
func (x *DoctorIndex) Resolve(v *model.Visit) (int, bool) {
	if v.DoctorID.Valid {
		if i, ok := x.byID[v.DoctorID.UUID]; ok {
			return i, true
		}
	}
	return x.MatchName(v.DoctorName)
}

// MatchName matches a free-form doctor name against the snapshot. Both sides
// are lowercased, trimmed and stripped of a leading "dr" title, then tried in
// order: exact match, substring containment either way, first-token prefix.
func (x *DoctorIndex) MatchName(name string) (int, bool) {
	n := normalize.NormalizeDoctorName(name)
	if n == "" {
		return -1, false
	}
	for i, dn := range x.norm {
		if dn != "" && dn == n {
			return i, true
		}
	}
	for i, dn := range x.norm {
		if dn != "" && (strings.Contains(dn, n) || strings.Contains(n, dn)) {
			return i, true
		}
	}
	first := normalize.FirstToken(n)
	for i, df := range x.first {
		if df != "" && (strings.HasPrefix(df, first) || strings.HasPrefix(first, df)) {
			return i, true
		}
	}
	return -1, false
}
