// Package commands holds the queries the main view can run against the
// shell: a greeting, the application directory and the active config.
package commands

import (
	"fmt"
	"strings"

	"chatapp/internal/config"
)

type Commands struct {
	cell   *config.Cell
	appDir func() (string, error)
}

func New(cell *config.Cell) *Commands {
	return &Commands{cell: cell, appDir: config.AppDir}
}

func (c *Commands) Greet(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "stranger"
	}
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}

func (c *Commands) AppDir() (string, error) {
	dir, err := c.appDir()
	if err != nil {
		return "", fmt.Errorf("resolve app dir: %w", err)
	}
	return dir, nil
}

// Config returns a copy of the active snapshot.
func (c *Commands) Config() config.AppConfig {
	return *c.cell.Load()
}
