/*
Package blockcard is a library for showing an animated profile card in a
terminal.
*/
package blockcard

import (
	"fmt"
	"io/ioutil"
	"log"

	"github.com/bodgit/blockcard/sheet"
)

// DefaultAnimation is the name of the embedded animation
const DefaultAnimation = "default"

type Card struct {
	db     *AssetDB
	logger *log.Logger
}

// New returns a Card. db may be nil in which case only the embedded
// animation is available.
func New(db *AssetDB, logger *log.Logger) *Card {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Card{
		db:     db,
		logger: logger,
	}
}

// Sheet returns the frames of the named animation, looking in the asset
// database first and then falling back to the embedded animation.
func (c *Card) Sheet(name string) (*sheet.Sheet, error) {
	if c.db != nil {
		s, err := c.db.Sheet(name)
		if err != nil {
			return nil, err
		}
		if s != nil {
			c.logger.Printf("Loaded \"%s\" with %d frames from the database\n", name, s.Length())
			return s, nil
		}
		c.logger.Printf("No animation \"%s\" in the database\n", name)
	}

	if name != DefaultAnimation {
		return nil, fmt.Errorf("unknown animation \"%s\"", name)
	}

	return DefaultSheet()
}

// Import stores a sheet in the asset database.
func (c *Card) Import(name string, s *sheet.Sheet) error {
	if c.db == nil {
		return fmt.Errorf("no asset database")
	}
	c.logger.Printf("Importing \"%s\" with %d frames\n", name, s.Length())
	return c.db.ImportSheet(name, s)
}

// Animations lists the animations in the asset database.
func (c *Card) Animations() ([]string, error) {
	if c.db == nil {
		return []string{DefaultAnimation}, nil
	}
	return c.db.Animations()
}
