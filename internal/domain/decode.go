package domain

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// DefaultProfileLabel is applied to profiles decoded without a label.
const DefaultProfileLabel = "New Profile"

// Decoding presets absent keys so hand-written documents that omit
// `enabled` stay enabled. An explicit false is kept.

func (c *CommandEntry) UnmarshalJSON(data []byte) error {
	type plain CommandEntry
	p := plain{Enabled: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = CommandEntry(p)
	return nil
}

func (c *CommandEntry) UnmarshalYAML(value *yaml.Node) error {
	type plain CommandEntry
	p := plain{Enabled: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = CommandEntry(p)
	return nil
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	v := plain{Label: DefaultProfileLabel, Enabled: true}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Profile(v)
	return nil
}

func (p *Profile) UnmarshalYAML(value *yaml.Node) error {
	type plain Profile
	v := plain{Label: DefaultProfileLabel, Enabled: true}
	if err := value.Decode(&v); err != nil {
		return err
	}
	*p = Profile(v)
	return nil
}
