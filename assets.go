package blockcard

import (
	_ "embed"

	"github.com/bodgit/blockcard/profile"
	"github.com/bodgit/blockcard/sheet"
)

//go:embed assets/default.sheet
var defaultSheet []byte

//go:embed assets/profile.yaml
var defaultProfile []byte

// DefaultSheet returns the embedded animation.
func DefaultSheet() (*sheet.Sheet, error) {
	s := new(sheet.Sheet)
	if err := s.UnmarshalBinary(defaultSheet); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultProfile returns the embedded profile panel.
func DefaultProfile() (*profile.Panel, error) {
	return profile.Parse(defaultProfile)
}
