// file: internal/tagger/taglib_stub.go
// version: 1.0.0
// guid: a1b2c3d4-e5f6-a7b8-c9d0-e1f2a3b4c5d6

//go:build !taglib

package tagger

// taglibAvailable false when not built with taglib
var taglibAvailable = false

// writeTagsWithTaglib stub when taglib not compiled in
func writeTagsWithTaglib(path string, tags Tags) error {
	return ErrTaglibUnavailable
}
