package cdnurl

import (
	"fmt"
	"strings"
)

const (
	// Version of the URL scheme implemented by this package.
	Version = "1.0.0"

	// SharedCDN is the host used for secure delivery when the call gives no
	// secure_distribution.
	SharedCDN = "d3jpl91pxevbkh.cloudfront.net"

	// DefaultHost is the host used for plain http delivery.
	DefaultHost = "res.cloudinary.com"
)

// Resource holds the account configuration used to build URLs.
//
// A Resource is immutable once built and is safe for concurrent use. To
// change the custom host, call WithCname, which returns a new Resource.
type Resource struct {
	cloudName string
	apiKey    string
	apiSecret string
	cname     string
}

// ResourceOption configures a Resource in New.
type ResourceOption func(*Resource)

// WithAPIKey stores the API key. URL building does not use it.
func WithAPIKey(key string) ResourceOption {
	return func(r *Resource) { r.apiKey = key }
}

// WithAPISecret stores the API secret. URL building does not use it.
func WithAPISecret(secret string) ResourceOption {
	return func(r *Resource) { r.apiSecret = secret }
}

// WithCname sets a custom host for plain http delivery.
func WithCname(host string) ResourceOption {
	return func(r *Resource) { r.cname = host }
}

// New returns a Resource for the given cloud name.
func New(cloudName string, opts ...ResourceOption) (*Resource, error) {
	if strings.TrimSpace(cloudName) == "" {
		return nil, ErrMissingCloudName
	}
	r := &Resource{cloudName: cloudName}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// CloudName returns the account's cloud name.
func (r *Resource) CloudName() string { return r.cloudName }

// APIKey returns the stored API key.
func (r *Resource) APIKey() string { return r.apiKey }

// APISecret returns the stored API secret.
func (r *Resource) APISecret() string { return r.apiSecret }

// Cname returns the custom delivery host, or DefaultHost if none is set.
func (r *Resource) Cname() string {
	if r.cname == "" {
		return DefaultHost
	}
	return r.cname
}

// WithCname returns a copy of r that delivers plain http from host. An
// empty host restores the defaults.
func (r *Resource) WithCname(host string) *Resource {
	c := *r
	c.cname = host
	return &c
}

// WithCloudName returns a copy of r for another cloud, keeping credentials
// and cname.
func (r *Resource) WithCloudName(cloudName string) (*Resource, error) {
	if strings.TrimSpace(cloudName) == "" {
		return nil, ErrMissingCloudName
	}
	c := *r
	c.cloudName = cloudName
	return &c, nil
}

// URL builds the delivery URL for name.
//
// Recognized URL-level options:
//   - type: delivery type, default "upload"
//   - resource_type: default "image"
//   - format: extension applied to name ("fetch_format" for type "fetch")
//   - secure, secure_distribution: https delivery and its host
//   - cname: host for plain http delivery
//   - transformation: nested transformations, see Transformation
//
// Any other option becomes a transformation parameter.
//
// Absolute http(s) names are returned unchanged for the "upload" and "asset"
// types.
func (r *Resource) URL(name string, opts Options) (string, error) {
	typ, ok, err := opts.lookup("type")
	if err != nil {
		return "", err
	}
	if !ok {
		typ = "upload"
	}

	if (typ == "upload" || typ == "asset") && isAbsoluteURL(name) {
		return name, nil
	}

	// A fetched resource keeps its own name, so the format becomes a
	// delivery parameter instead of an extension.
	if typ == "fetch" && opts.has("format") {
		opts = opts.clone()
		opts["fetch_format"] = opts["format"]
		delete(opts, "format")
	}

	host, err := r.host(opts)
	if err != nil {
		return "", err
	}

	resourceType, ok, err := opts.lookup("resource_type")
	if err != nil {
		return "", err
	}
	if !ok {
		resourceType = "image"
	}

	transformations, err := CompileSegments(opts)
	if err != nil {
		return "", err
	}

	// An empty format counts as absent; "test." is never produced.
	format, _, err := opts.lookup("format")
	if err != nil {
		return "", err
	}

	return joinNonEmpty([]string{
		host,
		r.cloudName,
		resourceType,
		typ,
		transformations,
		NormalizeName(name, format),
	}), nil
}

// URLs builds one URL per name with shared options.
func (r *Resource) URLs(names []string, opts Options) ([]string, error) {
	urls := make([]string, 0, len(names))
	for _, name := range names {
		u, err := r.URL(name, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// host returns scheme and host. For https it is the per-call
// secure_distribution or SharedCDN; the Resource's cname never applies. For
// http the per-call cname wins, then the Resource's cname, then DefaultHost.
func (r *Resource) host(opts Options) (string, error) {
	if truthy(opts["secure"]) {
		dist, ok, err := opts.lookup("secure_distribution")
		if err != nil {
			return "", err
		}
		if ok && dist != "" {
			return "https://" + dist, nil
		}
		return "https://" + SharedCDN, nil
	}

	cname, ok, err := opts.lookup("cname")
	if err != nil {
		return "", err
	}
	if ok && cname != "" {
		return "http://" + cname, nil
	}
	return "http://" + r.Cname(), nil
}

func isAbsoluteURL(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func joinNonEmpty(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}
