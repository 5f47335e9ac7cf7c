package invitation

import (
	"encoding/json"
	"time"
)

// DearBlock is the personal greeting shown to a guest on their invitation page.
// Raw keeps the record exactly as the CMS returned it, including fields the
// typed view does not declare.
type DearBlock struct {
	ID          string          `json:"id,omitempty"`
	Dear        string          `json:"dear,omitempty"`
	Message     string          `json:"message,omitempty"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
	PublishedAt *time.Time      `json:"publishedAt,omitempty"`
	RevisedAt   *time.Time      `json:"revisedAt,omitempty"`
	Raw         json.RawMessage `json:"-"`
}

// Found reports whether the block carries something to render.
func (d *DearBlock) Found() bool {
	return d != nil && d.Message != ""
}

func (d DearBlock) MarshalJSON() ([]byte, error) {
	if len(d.Raw) > 0 {
		return d.Raw, nil
	}
	type view DearBlock
	return json.Marshal(view(d))
}

// Invitation is an invitation page record. Only the system fields are typed;
// the page content is schema-defined in the CMS and travels in Raw.
type Invitation struct {
	ID          string          `json:"id,omitempty"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
	PublishedAt *time.Time      `json:"publishedAt,omitempty"`
	RevisedAt   *time.Time      `json:"revisedAt,omitempty"`
	Raw         json.RawMessage `json:"-"`
}

func (i *Invitation) Found() bool {
	return i != nil
}

func (i Invitation) MarshalJSON() ([]byte, error) {
	if len(i.Raw) > 0 {
		return i.Raw, nil
	}
	type view Invitation
	return json.Marshal(view(i))
}
