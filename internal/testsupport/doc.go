// Package testsupport provides shared fixtures for broom tests: rules
// configurations rooted in per-test temp directories, stub engine scripts,
// and launcher settings pointing at them.
package testsupport
