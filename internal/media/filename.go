package media

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// AllowedExtensions lists the image types accepted for upload.
var AllowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

var (
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

	windowsDeviceNames = map[string]struct{}{
		"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
		"COM0": {}, "COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
		"LPT0": {}, "LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
	}
)

// Allowed reports whether filename has an allowed image extension
// (case-insensitive).
func Allowed(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	_, ok := AllowedExtensions[strings.ToLower(filename[i+1:])]
	return ok
}

// SanitizeFilename returns a version of name that is safe to join to the
// upload directory: ASCII only, no path separators, only [A-Za-z0-9_.-],
// no leading or trailing dots/underscores. It may return "".
//
//	SanitizeFilename("../../etc/passwd.png") == "etc_passwd.png"
//	SanitizeFilename("My cool movie.mov")    == "My_cool_movie.mov"
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, name)
	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		return ""
	}
	if _, ok := windowsDeviceNames[strings.ToUpper(strings.SplitN(name, ".", 2)[0])]; ok {
		name = "_" + name
	}
	// must be a single path element
	if path.Base(name) != name {
		return ""
	}
	return name
}
