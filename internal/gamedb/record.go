// Package gamedb persists per-game installation records so repeated runs
// never re-prompt for settings the user already made. The store is the single
// source of truth for installed state; the planner reads and writes records
// only through it.
package gamedb

import "encoding/json"

// Identity keys a record. Steam entries use their appid; manually browsed
// games use the resolved absolute install path, matching how the store keyed
// games before appids were available.
type Identity string

// Known record field keys as persisted.
const (
	fieldArchitecture  = "architecture"
	fieldGraphicsAPI   = "graphics_api"
	fieldOverride      = "override_module"
	fieldInstallPath   = "install_path"
	fieldShadersMerged = "shaders_merged"
)

// Record holds the last-used settings for one game. Extra carries any fields
// this version does not recognize, preserved byte-for-byte on round-trip so a
// newer version's additions survive being re-saved by this one.
type Record struct {
	Architecture   string
	GraphicsAPI    string
	OverrideModule string
	InstallPath    string
	ShadersMerged  bool
	Extra          map[string]json.RawMessage
}

// MarshalJSON flattens known fields and Extra into one object.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+5)
	for key, value := range r.Extra {
		out[key] = value
	}
	for key, value := range map[string]interface{}{
		fieldArchitecture:  r.Architecture,
		fieldGraphicsAPI:   r.GraphicsAPI,
		fieldOverride:      r.OverrideModule,
		fieldInstallPath:   r.InstallPath,
		fieldShadersMerged: r.ShadersMerged,
	} {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		out[key] = encoded
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits an object into known fields and Extra.
func (r *Record) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	take := func(key string, dst interface{}) error {
		value, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		return json.Unmarshal(value, dst)
	}
	if err := take(fieldArchitecture, &r.Architecture); err != nil {
		return err
	}
	if err := take(fieldGraphicsAPI, &r.GraphicsAPI); err != nil {
		return err
	}
	if err := take(fieldOverride, &r.OverrideModule); err != nil {
		return err
	}
	if err := take(fieldInstallPath, &r.InstallPath); err != nil {
		return err
	}
	if err := take(fieldShadersMerged, &r.ShadersMerged); err != nil {
		return err
	}
	if len(raw) > 0 {
		r.Extra = raw
	} else {
		r.Extra = nil
	}
	return nil
}

// SetExtra records an unknown-schema value under key, marshaling it to JSON.
func (r *Record) SetExtra(key string, value interface{}) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if r.Extra == nil {
		r.Extra = map[string]json.RawMessage{}
	}
	r.Extra[key] = encoded
	return nil
}
