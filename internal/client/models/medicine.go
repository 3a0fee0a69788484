// Package models defines the records the CLI exchanges with the API.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Medicine is one inventory record as returned by the API.
type Medicine struct {
	ID            int64     `json:"id"`
	UserName      string    `json:"userName"`
	Age           int       `json:"age"`
	Contact       string    `json:"contact"`
	DrugName      string    `json:"drugName"`
	MedicineType  string    `json:"medicineType"`
	ProfileImage  *string   `json:"profileImage"`
	DocumentProof *string   `json:"documentProof"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (m Medicine) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s (%s) for %s, age %d, contact %s", m.ID, m.DrugName, m.MedicineType, m.UserName, m.Age, m.Contact)
	if m.ProfileImage != nil {
		fmt.Fprintf(&b, "\n    image: %s", *m.ProfileImage)
	}
	if m.DocumentProof != nil {
		fmt.Fprintf(&b, "\n    proof: %s", *m.DocumentProof)
	}
	return b.String()
}

// MedicineForm is what the user enters for add and update. Age stays text;
// the server decides whether it is a valid integer. Empty file paths mean
// "no file".
type MedicineForm struct {
	UserName          string
	Age               string
	Contact           string
	DrugName          string
	MedicineType      string
	ProfileImagePath  string
	DocumentProofPath string
}

// Fields returns the text fields keyed by their form names.
func (f MedicineForm) Fields() map[string]string {
	return map[string]string{
		"userName":     f.UserName,
		"age":          f.Age,
		"contact":      f.Contact,
		"drugName":     f.DrugName,
		"medicineType": f.MedicineType,
	}
}
