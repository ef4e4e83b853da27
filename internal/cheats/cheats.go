// Package cheats implements Game Genie codes for Game Boy cartridges.
package cheats

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseFile reads a cheat file into g. Each cheat starts with a line
// naming it, followed by its codes, one per line:
//
//	# Infinite lives
//	00A-17B-C49
//
// Blank lines are ignored.
func ParseFile(r io.Reader, g *GameGenie) error {
	scanner := bufio.NewScanner(r)

	name, line := "", 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "":
			continue
		case strings.HasPrefix(text, "#"):
			name = strings.TrimSpace(text[1:])
			continue
		}
		if err := g.Load(text, name); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return scanner.Err()
}
