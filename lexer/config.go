// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines options shared by the Lexer & the serialization
	// operations consuming it.
	Config struct {
		Logger    logrus.FieldLogger
		EndMarker rune
		Splitter  rune
		Debug     bool
	}
)

const (
	// defEndMarker a `rune` indicating the end of a Record's children.
	defEndMarker = ')'

	// defSplitter is the character used to split serialized Record keys.
	defSplitter = ','

	emptyRune rune = 0
)

// NewConfig instantiates a Config with defaults.
func NewConfig() *Config {
	return &Config{
		EndMarker: defEndMarker,
		Splitter:  defSplitter,
		Logger:    logrus.New(),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.EndMarker == emptyRune {
		c.EndMarker = defEndMarker
	}
	if c.Splitter == emptyRune {
		c.Splitter = defSplitter
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}
