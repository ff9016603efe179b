package device

import "strings"

// Info describes the client device presented at login. It travels on session
// and refresh-token rows; there is no standalone device table. The fingerprint
// is client-derived and correlates recurring logins from the same physical
// device.
type Info struct {
	Fingerprint string
	Name        string
	Platform    string
}

// Normalize returns a copy with surrounding whitespace removed from every
// field.
func (i Info) Normalize() Info {
	return Info{
		Fingerprint: strings.TrimSpace(i.Fingerprint),
		Name:        strings.TrimSpace(i.Name),
		Platform:    strings.TrimSpace(i.Platform),
	}
}

// Known reports whether the client identified itself with a fingerprint.
func (i Info) Known() bool {
	return i.Fingerprint != ""
}
