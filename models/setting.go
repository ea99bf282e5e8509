package models

import "time"

// Setting is a typed key-value configuration row, unique on (Type, Name).
// Structured values are stored as JSON text.
type Setting struct {
	ID        int64     `json:"-"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Setting model.
func (s Setting) TableName() string {
	return "settings"
}

// SettingKey is the composite key of a setting.
type SettingKey struct {
	Type string
	Name string
}

// String returns "type/name".
func (k SettingKey) String() string {
	return k.Type + "/" + k.Name
}

// Key returns the composite key of the setting.
func (s Setting) Key() SettingKey {
	return SettingKey{Type: s.Type, Name: s.Name}
}
