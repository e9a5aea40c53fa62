package main

import (
	"strings"
	"sync"

	"broom/internal/settings"
)

type commandContext struct {
	settingsFlag *string

	settingsOnce sync.Once
	settings     *settings.Settings
	settingsPath string
	settingsErr  error
}

func newCommandContext(settingsFlag *string) *commandContext {
	return &commandContext{settingsFlag: settingsFlag}
}

func (c *commandContext) ensureSettings() (*settings.Settings, error) {
	c.settingsOnce.Do(func() {
		var path string
		if c.settingsFlag != nil {
			path = strings.TrimSpace(*c.settingsFlag)
		}
		st, resolved, _, err := settings.Load(path)
		if err != nil {
			c.settingsErr = err
			return
		}
		c.settings = st
		c.settingsPath = resolved
	})
	return c.settings, c.settingsErr
}
