package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeRouting(); err != nil {
		return err
	}
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Downloads) != "" {
		if c.Paths.Downloads, err = ExpandPath(c.Paths.Downloads); err != nil {
			return fmt.Errorf("paths.downloads: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.ArchiveBase) != "" {
		if c.Paths.ArchiveBase, err = ExpandPath(c.Paths.ArchiveBase); err != nil {
			return fmt.Errorf("paths.archive_base: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeRouting() error {
	for i := range c.Routing.Keyword {
		rule := &c.Routing.Keyword[i]
		rule.Keyword = strings.TrimSpace(rule.Keyword)
		if strings.TrimSpace(rule.Target) == "" {
			continue
		}
		target, err := ExpandPath(rule.Target)
		if err != nil {
			return fmt.Errorf("routing.keyword[%d]: %w", i, err)
		}
		rule.Target = target
	}

	if len(c.Routing.Extensions) > 0 {
		normalized := make(map[string]string, len(c.Routing.Extensions))
		for ext, target := range c.Routing.Extensions {
			key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
			if key == "" {
				return fmt.Errorf("routing.extensions: empty extension key")
			}
			expanded, err := ExpandPath(target)
			if err != nil {
				return fmt.Errorf("routing.extensions.%s: %w", key, err)
			}
			normalized[key] = expanded
		}
		c.Routing.Extensions = normalized
	}

	if len(c.Routing.Mime) > 0 {
		normalized := make(map[string]string, len(c.Routing.Mime))
		for mimeKey, target := range c.Routing.Mime {
			key := strings.ToLower(strings.TrimSpace(mimeKey))
			if key == "" {
				return fmt.Errorf("routing.mime: empty MIME key")
			}
			expanded, err := ExpandPath(target)
			if err != nil {
				return fmt.Errorf("routing.mime.%s: %w", key, err)
			}
			normalized[key] = expanded
		}
		c.Routing.Mime = normalized
	}
	return nil
}

func (c *Config) normalizeJournal() error {
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = defaultJournalPath
	}
	path, err := ExpandPath(c.Journal.Path)
	if err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	c.Journal.Path = path
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
