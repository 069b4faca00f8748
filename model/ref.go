package model

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference to another marketplace entity. The marketplace sends either the bare id
// or the populated document, so both shapes decode into it.
type Ref struct {
	ID      string `json:"_id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	// Owner is set on restaurant refs when the marketplace populates the owning user.
	Owner *Ref `json:"owner,omitempty"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}
