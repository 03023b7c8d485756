package model

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPatients(t *testing.T) {
	patients := DefaultPatients()

	assert.Len(t, patients, 5)
	for _, p := range patients {
		assert.NotEmpty(t, p.Name)
		assert.Positive(t, p.Age)
		assert.True(t, p.CreatedAt.IsZero(), "createdAt is server-assigned")
	}
	assert.Equal(t, Patient{Name: "Asha Kumar", Age: 34}, patients[0])
	assert.Equal(t, Patient{Name: "Priya Menon", Age: 19}, patients[4])
}

func TestDefaultPatientsReturnsFreshSlice(t *testing.T) {
	first := DefaultPatients()
	first[0].Name = "changed"

	assert.Equal(t, "Asha Kumar", DefaultPatients()[0].Name)
}

func TestCreatedAtIsServerTimestamp(t *testing.T) {
	field, ok := reflect.TypeOf(Patient{}).FieldByName("CreatedAt")
	assert.True(t, ok)
	assert.Equal(t, "createdAt,serverTimestamp", field.Tag.Get("firestore"))

	name, _ := reflect.TypeOf(Patient{}).FieldByName("Name")
	age, _ := reflect.TypeOf(Patient{}).FieldByName("Age")
	assert.Equal(t, "name", name.Tag.Get("firestore"))
	assert.Equal(t, "age", age.Tag.Get("firestore"))
}

func TestForInsertClearsCallerTimestamp(t *testing.T) {
	p := Patient{Name: "Asha Kumar", Age: 34, CreatedAt: time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)}

	doc := p.ForInsert()

	assert.True(t, doc.CreatedAt.IsZero())
	assert.Equal(t, "Asha Kumar", doc.Name)
	assert.Equal(t, 34, doc.Age)
	assert.False(t, p.CreatedAt.IsZero(), "receiver is left untouched")
}
