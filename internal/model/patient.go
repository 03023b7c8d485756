package model

import (
	"time"
)

// Patient is a sample patient document. CreatedAt is filled in by the
// database at commit time whenever it is the zero value.
type Patient struct {
	Name      string    `firestore:"name" json:"name"`
	Age       int       `firestore:"age" json:"age"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// ForInsert returns a copy with CreatedAt cleared so the server assigns it.
func (p Patient) ForInsert() Patient {
	p.CreatedAt = time.Time{}
	return p
}

// DefaultPatients returns the sample patient set. Each call returns a new
// slice.
func DefaultPatients() []Patient {
	return []Patient{
		{Name: "Asha Kumar", Age: 34},
		{Name: "Ravi Patel", Age: 42},
		{Name: "Meera Das", Age: 28},
		{Name: "Suresh Nair", Age: 55},
		{Name: "Priya Menon", Age: 19},
	}
}
