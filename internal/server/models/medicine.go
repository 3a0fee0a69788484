// Package models holds the records persisted by the server repositories.
package models

import "time"

// MedicineItem is one inventory record. ProfileImage and DocumentProof hold
// public attachment paths ("/uploads/<file>") or nil when no file was given.
type MedicineItem struct {
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

// AttachmentRefs returns the non-nil attachment paths of the item.
func (m *MedicineItem) AttachmentRefs() []string {
	var refs []string
	if m.ProfileImage != nil {
		refs = append(refs, *m.ProfileImage)
	}
	if m.DocumentProof != nil {
		refs = append(refs, *m.DocumentProof)
	}
	return refs
}
