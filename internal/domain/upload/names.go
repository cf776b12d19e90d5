package upload

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// DefaultExtensions is the allow-list used when none is configured.
var DefaultExtensions = []string{"png", "jpg", "jpeg", "pdf", "txt"}

// Extensions is a case-insensitive set of accepted file extensions, without dots.
type Extensions map[string]struct{}

func NewExtensions(exts ...string) Extensions {
	set := make(Extensions, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			set[ext] = struct{}{}
		}
	}
	return set
}

// Allows reports whether filename ends in an accepted extension.
// The extension is whatever follows the last dot.
func (e Extensions) Allows(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	_, ok := e[strings.ToLower(filename[idx+1:])]
	return ok
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// maxNameLen keeps token + "_" + name within the 255-byte filename limit.
const maxNameLen = 255 - tokenLen - 1

const tokenLen = 32

// sanitizeName reduces an uploader-supplied name to a safe, flat ASCII filename.
func sanitizeName(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.ReplaceAll(name, "/", " ")
	name = strings.ReplaceAll(name, "\\", " ")
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name == "" {
		return "file"
	}
	return truncateName(name)
}

// truncateName shortens the stem so the name fits maxNameLen, keeping the
// extension. Input is ASCII, so byte slicing is safe.
func truncateName(name string) string {
	if len(name) <= maxNameLen {
		return name
	}
	ext := ""
	if idx := strings.LastIndex(name, "."); idx > 0 && len(name)-idx < maxNameLen {
		ext = name[idx:]
	}
	stem := strings.TrimRight(name[:maxNameLen-len(ext)], "._")
	if stem == "" {
		stem = "file"
	}
	return stem + ext
}

// storageName prefixes the sanitized name with a fresh tokenLen-char hex token.
func storageName(original string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return token + "_" + sanitizeName(original)
}

func storagePath(baseDir, name string) string {
	return filepath.Join(baseDir, name)
}
