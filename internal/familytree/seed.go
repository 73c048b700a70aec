package familytree

import "github.com/thenoetrevino/lineage/internal/models"

// placeholder is one member of the demo family new users start with
type placeholder struct {
	name, parent, relationship, birthDate, notes string
}

var placeholders = []placeholder{
	{"John Smith", "", models.RelationshipRoot, "1950-01-15", "Family patriarch"},
	{"Mary Smith", "John Smith", models.RelationshipSpouse, "1952-03-20", "Loving wife and mother"},
	{"Alice Johnson", "John Smith", models.RelationshipChild, "1975-07-10", "Eldest daughter"},
	{"Bob Smith", "John Smith", models.RelationshipChild, "1978-11-05", "Son"},
	{"Charlie Johnson", "Alice Johnson", models.RelationshipChild, "2000-04-12", "Grandson"},
	{"Diana Johnson", "Alice Johnson", models.RelationshipChild, "2003-09-18", "Granddaughter"},
}

// Seeded returns a store holding the placeholder family
func Seeded() *Store {
	s := New()
	for _, p := range placeholders {
		// the placeholders are consistent, Insert cannot fail on them
		_ = s.Insert(p.name, p.parent, p.relationship, p.birthDate, p.notes)
	}
	return s
}
