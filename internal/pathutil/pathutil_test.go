package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/a", "a"},
		{"/a/b/c.txt", "c.txt"},
		{"/a/b/", "b"},
		{"relative/name", "name"},
		{"", ""},
		{"///", ""},
		{"/データ/ファイル.txt", "ファイル.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Basename(tt.path), "Basename(%q)", tt.path)
	}
}

func TestDirname(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/a/b/c.txt", "/a/b"},
		{"/a", ""},
		{"noslash", ""},
		{"/データ/ファイル.txt", "/データ"},
		{"/a/b/", "/a/b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Dirname(tt.path), "Dirname(%q)", tt.path)
	}
}
