// Package content loads the bytes behind a content reference, which is either
// a local filesystem path or a remote HTTP(S) URL. Failures never surface as
// errors: callers get an Absent result and decide what to show instead.
package content

import "strings"

// Reference identifies where content is loaded from. The only
// implementations are LocalPath and RemoteURL.
type Reference interface {
	String() string
	reference()
}

// LocalPath is a path on the local filesystem.
type LocalPath string

func (p LocalPath) String() string { return string(p) }
func (LocalPath) reference()       {}

// RemoteURL is an http:// or https:// URL.
type RemoteURL string

func (u RemoteURL) String() string { return string(u) }
func (RemoteURL) reference()       {}

var remoteSchemes = []string{"http://", "https://"}

// ParseReference classifies raw by its scheme prefix. It is meant to run once,
// when configuration is loaded, so Resolve never has to sniff strings.
func ParseReference(raw string) Reference {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	for _, scheme := range remoteSchemes {
		if strings.HasPrefix(lower, scheme) {
			return RemoteURL(trimmed)
		}
	}
	return LocalPath(trimmed)
}

// IsRemote reports whether ref is a RemoteURL.
func IsRemote(ref Reference) bool {
	_, ok := ref.(RemoteURL)
	return ok
}
