package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrDistNotFound = errors.New("build output directory not found")

const htaccessTemplate = `RewriteEngine On
RewriteBase %[1]s/

# Single-page app routes fall back to index.html
RewriteCond %%{REQUEST_FILENAME} !-f
RewriteCond %%{REQUEST_FILENAME} !-d
RewriteRule . %[1]s/index.html [L]

# Cache static assets
<IfModule mod_expires.c>
    ExpiresActive on
    ExpiresByType text/css "access plus 1 year"
    ExpiresByType application/javascript "access plus 1 year"
    ExpiresByType image/png "access plus 1 year"
    ExpiresByType image/jpg "access plus 1 year"
    ExpiresByType image/jpeg "access plus 1 year"
    ExpiresByType image/gif "access plus 1 year"
    ExpiresByType image/svg+xml "access plus 1 year"
</IfModule>

# Gzip compression
<IfModule mod_deflate.c>
    AddOutputFilterByType DEFLATE text/plain
    AddOutputFilterByType DEFLATE text/html
    AddOutputFilterByType DEFLATE text/xml
    AddOutputFilterByType DEFLATE text/css
    AddOutputFilterByType DEFLATE application/xml
    AddOutputFilterByType DEFLATE application/xhtml+xml
    AddOutputFilterByType DEFLATE application/rss+xml
    AddOutputFilterByType DEFLATE application/javascript
    AddOutputFilterByType DEFLATE application/x-javascript
</IfModule>
`

// basePath turns "app" or "/app/" into "/app"; empty means the domain root.
func basePath(subdir string) string {
	subdir = strings.Trim(subdir, "/ ")
	if subdir == "" {
		return ""
	}
	return "/" + subdir
}

// Render returns the rewrite rules for an app served from subdir.
func Render(subdir string) string {
	return fmt.Sprintf(htaccessTemplate, basePath(subdir))
}

// Write creates distDir/.htaccess. distDir must already exist.
func Write(distDir, subdir string) (string, error) {
	info, err := os.Stat(distDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDistNotFound, distDir)
	}
	path := filepath.Join(distDir, ".htaccess")
	if err := os.WriteFile(path, []byte(Render(subdir)), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
