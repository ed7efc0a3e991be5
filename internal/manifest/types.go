package manifest

import (
	"github.com/extpack-labs/extpack/internal/version"
)

// Catalog is a named, remotely hosted collection of extensions. It is
// the unit persisted in the registry; extensions are fetched lazily
// from RawURI, never stored.
type Catalog struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URI         string `json:"uri"`
	RawURI      string `json:"rawUri"`
	Deletable   bool   `json:"deletable"`
}

// Manifest is the document served at a catalog's raw URI.
type Manifest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Extensions  []Extension `json:"extensions"`
}

// Extension is an installable unit of host functionality, versioned via
// its releases. Identity at query time is the (catalog, extension) pair.
type Extension struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Homepage    string    `json:"homepage"`
	Starred     bool      `json:"starred"`
	Releases    []Release `json:"releases"`
}

// Release is one installable version of an extension.
type Release struct {
	Name                   string    `json:"name"`
	MainURL                string    `json:"mainUrl"`
	RequiredDependencyURLs []string  `json:"requiredDependencyUrls"`
	OptionalDependencyURLs []string  `json:"optionalDependencyUrls"`
	JavadocsURLs           []string  `json:"javadocsUrls"`
	VersionRange           RangeSpec `json:"versionRange"`
}

// RangeSpec is the wire form of a host-compatibility range: min
// inclusive, max (empty means unbounded) exclusive.
type RangeSpec struct {
	Min string `json:"min"`
	Max string `json:"max,omitempty"`
}

// Version parses the release name as a version string.
func (r Release) Version() (version.Version, error) {
	return version.Parse(r.Name)
}

// Compatible reports whether the release supports the given host
// version. Unparseable range bounds make the release incompatible.
func (r Release) Compatible(host version.Version) bool {
	rng, err := version.ParseRange(r.VersionRange.Min, r.VersionRange.Max)
	if err != nil {
		return false
	}
	return rng.Compatible(host)
}

// FindRelease returns the release with the given name, or nil.
func (e Extension) FindRelease(name string) *Release {
	for i := range e.Releases {
		if e.Releases[i].Name == name {
			return &e.Releases[i]
		}
	}
	return nil
}

// MaxCompatibleRelease returns the highest-versioned release compatible
// with host, or nil when none qualifies.
func (e Extension) MaxCompatibleRelease(host version.Version) *Release {
	var best *Release
	var bestVer version.Version
	for i := range e.Releases {
		r := &e.Releases[i]
		if !r.Compatible(host) {
			continue
		}
		v, err := r.Version()
		if err != nil {
			continue
		}
		if best == nil || bestVer.LessThan(v) {
			best = r
			bestVer = v
		}
	}
	return best
}
