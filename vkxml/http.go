package vkxml

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-getter"

	"github.com/Vulkan-FIT/vkcpp-gen/errors"
)

const (
	fetchTimeout      = 2 * time.Minute
	fetchMaxRedirects = 10
)

// newHTTPClient returns the client used for http(s) registry downloads.
// Redirects are capped and may not leave http(s) or carry credentials.
func newHTTPClient(timeout time.Duration, maxRedirects int) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errors.Newf("stopped after %d redirects", maxRedirects)
			}
			if err := checkRedirectURL(req.URL); err != nil {
				return errors.Wrap(err, "redirect blocked")
			}
			return nil
		},
	}
}

func checkRedirectURL(u *url.URL) error {
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return errors.Newf("scheme %q not allowed", u.Scheme)
	}
	if u.User != nil {
		return errors.New("URL carries credentials")
	}
	return nil
}

// getters is go-getter's default set with the http(s) getters swapped for
// ones using newHTTPClient.
func getters() map[string]getter.Getter {
	client := newHTTPClient(fetchTimeout, fetchMaxRedirects)
	out := make(map[string]getter.Getter, len(getter.Getters))
	for scheme, g := range getter.Getters {
		out[scheme] = g
	}
	out["http"] = &getter.HttpGetter{Client: client, Netrc: true}
	out["https"] = &getter.HttpGetter{Client: client, Netrc: true}
	return out
}
