package models

import "strings"

// CodeListResponse is the provider's two-level code-list envelope: an outer
// CodeList wrapper containing one or more ValidValue groups.
type CodeListResponse struct {
	CodeList      []CodeListGroup `json:"CodeList"`
	DateGenerated string          `json:"DateGenerated"`
}

type CodeListGroup struct {
	ValidValue []CodeListItem `json:"ValidValue"`
	ID         string         `json:"id"`
}

type CodeListItem struct {
	Code         string `json:"Code"`
	Value        string `json:"Value"`
	LastModified string `json:"LastModified"`
	IsDisabled   string `json:"IsDisabled"`

	// List-specific extras; empty for most lists.
	JobFamily  string `json:"JobFamily,omitempty"`
	ParentCode string `json:"ParentCode,omitempty"`
}

// IsActive reports whether the item has not been disabled by the provider.
func (i CodeListItem) IsActive() bool {
	return !strings.EqualFold(i.IsDisabled, "Yes")
}

// Flatten merges every group's items into one list, preserving group order.
func (r *CodeListResponse) Flatten() []CodeListItem {
	if r == nil {
		return nil
	}
	var items []CodeListItem
	for _, group := range r.CodeList {
		items = append(items, group.ValidValue...)
	}
	return items
}
