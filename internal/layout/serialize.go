package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// Layout is a named collection of keys.
type Layout struct {
	Name string
	Keys []*Key
}

// AnnotatableKeys returns the keys that participate in matrix semantics,
// in layout order.
func (l *Layout) AnnotatableKeys() []*Key {
	var keys []*Key
	for _, k := range l.Keys {
		if k.Annotatable() {
			keys = append(keys, k)
		}
	}
	return keys
}

// layoutFile is the JSON structure of a .kbmx layout file.
type layoutFile struct {
	Version int       `json:"version"`
	Name    string    `json:"name,omitempty"`
	Keys    []keyData `json:"keys"`
}

// keyData is the JSON-serializable representation of a key. Zero-value
// width/height mean 1u.
type keyData struct {
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
	Width         float64  `json:"width,omitempty"`
	Height        float64  `json:"height,omitempty"`
	RotationAngle float64  `json:"rotation_angle,omitempty"`
	RotationX     float64  `json:"rotation_x,omitempty"`
	RotationY     float64  `json:"rotation_y,omitempty"`
	Labels        []string `json:"labels,omitempty"`
	Color         string   `json:"color,omitempty"`
	Ghost         bool     `json:"ghost,omitempty"`
	Decal         bool     `json:"decal,omitempty"`
}

// Unmarshal parses a layout from JSON.
func Unmarshal(data []byte) (*Layout, error) {
	var lf layoutFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	l := &Layout{Name: lf.Name}
	for _, kd := range lf.Keys {
		k := &Key{
			X:             kd.X,
			Y:             kd.Y,
			Width:         kd.Width,
			Height:        kd.Height,
			RotationAngle: kd.RotationAngle,
			RotationX:     kd.RotationX,
			RotationY:     kd.RotationY,
			Color:         kd.Color,
			Ghost:         kd.Ghost,
			Decal:         kd.Decal,
		}
		if k.Width == 0 {
			k.Width = 1
		}
		if k.Height == 0 {
			k.Height = 1
		}
		// Extra label slots beyond NumSlots are dropped
		for i, lbl := range kd.Labels {
			if i >= NumSlots {
				break
			}
			k.Labels[i] = lbl
		}
		l.Keys = append(l.Keys, k)
	}
	return l, nil
}

// Marshal serializes a layout to indented JSON.
func (l *Layout) Marshal() ([]byte, error) {
	lf := layoutFile{Version: 1, Name: l.Name}
	for _, k := range l.Keys {
		kd := keyData{
			X:             k.X,
			Y:             k.Y,
			Width:         k.Width,
			Height:        k.Height,
			RotationAngle: k.RotationAngle,
			RotationX:     k.RotationX,
			RotationY:     k.RotationY,
			Color:         k.Color,
			Ghost:         k.Ghost,
			Decal:         k.Decal,
		}
		if kd.Width == 1 {
			kd.Width = 0
		}
		if kd.Height == 1 {
			kd.Height = 0
		}
		// Trim trailing empty label slots
		last := -1
		for i, lbl := range k.Labels {
			if lbl != "" {
				last = i
			}
		}
		if last >= 0 {
			kd.Labels = append([]string(nil), k.Labels[:last+1]...)
		}
		lf.Keys = append(lf.Keys, kd)
	}
	return json.MarshalIndent(lf, "", "  ")
}

// Load reads a layout file from disk.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// Save writes the layout to disk.
func (l *Layout) Save(path string) error {
	data, err := l.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
