package persona

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidInput is returned for profile URLs without a /user/<name> segment.
var ErrInvalidInput = errors.New("invalid Reddit user URL")

var userPathRegex = regexp.MustCompile(`/user/([^/?#]+)/?`)

// UsernameFromURL extracts the username from a profile URL such as
// https://www.reddit.com/user/kojied/.
func UsernameFromURL(profileURL string) (string, error) {
	m := userPathRegex.FindStringSubmatch(profileURL)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidInput, profileURL)
	}
	return m[1], nil
}
