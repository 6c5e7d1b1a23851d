package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	root := Render("")
	assert.Contains(t, root, "RewriteBase /\n")
	assert.Contains(t, root, "RewriteRule . /index.html [L]")
	assert.Contains(t, root, "RewriteCond %{REQUEST_FILENAME} !-f")

	sub := Render("/shop/")
	assert.Contains(t, sub, "RewriteBase /shop/\n")
	assert.Contains(t, sub, "RewriteRule . /shop/index.html [L]")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(dir, "app")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".htaccess"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "RewriteBase /app/")

	_, err = Write(filepath.Join(dir, "missing"), "")
	assert.ErrorIs(t, err, ErrDistNotFound)
}

func TestRunReportsOutcome(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	run([]string{"-dist", dir, "portal"}, &out)
	assert.Contains(t, out.String(), "created successfully")
	assert.Contains(t, out.String(), "/portal")

	out.Reset()
	run([]string{"-dist", filepath.Join(dir, "nope")}, &out)
	assert.Contains(t, out.String(), "folder not found")
}
