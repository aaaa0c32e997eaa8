package dto

import (
	"time"

	"github.com/allisson/hname/internal/hname"
	registryDomain "github.com/allisson/hname/internal/registry/domain"
)

// HashResult pairs a name with its hname, both as hex and as the raw uint32.
type HashResult struct {
	Name  string `json:"name"`
	HName string `json:"hname"`
	Value uint32 `json:"value"`
}

// HashResponse lists results in request order.
type HashResponse struct {
	Data []HashResult `json:"data"`
}

// EntryResponse is a registry entry.
type EntryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	HName     string    `json:"hname"`
	Value     uint32    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// ListEntriesResponse is one page of entries.
type ListEntriesResponse struct {
	Data []EntryResponse `json:"data"`
}

// MapHashResult builds the result for a single name.
func MapHashResult(name string, h hname.HName) HashResult {
	return HashResult{Name: name, HName: h.String(), Value: uint32(h)}
}

// MapHashResponse zips names with their hnames. Both slices have the same length.
func MapHashResponse(names []string, hnames []hname.HName) HashResponse {
	data := make([]HashResult, 0, len(names))
	for i, name := range names {
		data = append(data, MapHashResult(name, hnames[i]))
	}
	return HashResponse{Data: data}
}

// MapEntryToResponse converts a domain entry.
func MapEntryToResponse(entry *registryDomain.Entry) EntryResponse {
	return EntryResponse{
		ID:        entry.ID.String(),
		Name:      entry.Name,
		Kind:      string(entry.Kind),
		HName:     entry.HName.String(),
		Value:     uint32(entry.HName),
		CreatedAt: entry.CreatedAt,
	}
}

// MapEntriesToListResponse converts a page of domain entries.
func MapEntriesToListResponse(entries []*registryDomain.Entry) ListEntriesResponse {
	data := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		data = append(data, MapEntryToResponse(entry))
	}
	return ListEntriesResponse{Data: data}
}
