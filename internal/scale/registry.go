package scale

import (
	"strings"

	"bubblemap/internal/geoproj"
)

// DefaultProjection is used for unknown projection names.
const DefaultProjection = "albersUsa"

// Factory builds a fresh projection instance.
type Factory func() geoproj.Projection

// Registry maps projection names to factories. Lookups are
// case-insensitive and ignore a leading "geo" as well as '-', '_' and
// spaces, so "geoMercator", "mercator" and "Albers-USA" all resolve.
type Registry struct {
	factories map[string]Factory
	names     []string
	fallback  string
}

// NewRegistry returns a registry holding the standard catalog.
func NewRegistry() *Registry {
	r := &Registry{factories: map[string]Factory{}, fallback: DefaultProjection}
	r.Register("azimuthalEqualArea", func() geoproj.Projection { return geoproj.AzimuthalEqualArea() })
	r.Register("azimuthalEquidistant", func() geoproj.Projection { return geoproj.AzimuthalEquidistant() })
	r.Register("gnomonic", func() geoproj.Projection { return geoproj.Gnomonic() })
	r.Register("orthographic", func() geoproj.Projection { return geoproj.Orthographic() })
	r.Register("stereographic", func() geoproj.Projection { return geoproj.Stereographic() })
	r.Register("equalEarth", func() geoproj.Projection { return geoproj.EqualEarth() })
	r.Register("albers", func() geoproj.Projection { return geoproj.Albers() })
	r.Register("albersUsa", func() geoproj.Projection { return geoproj.NewAlbersUSA() })
	r.Register("conicConformal", func() geoproj.Projection { return geoproj.ConicConformal() })
	r.Register("conicEqualArea", func() geoproj.Projection { return geoproj.ConicEqualArea() })
	r.Register("conicEquidistant", func() geoproj.Projection { return geoproj.ConicEquidistant() })
	r.Register("equirectangular", func() geoproj.Projection { return geoproj.Equirectangular() })
	r.Register("mercator", func() geoproj.Projection { return geoproj.Mercator() })
	r.Register("transverseMercator", func() geoproj.Projection { return geoproj.TransverseMercator() })
	r.Register("naturalEarth1", func() geoproj.Projection { return geoproj.NaturalEarth1() })
	return r
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
	return strings.TrimPrefix(name, "geo")
}

// Register adds or replaces a catalog entry.
func (r *Registry) Register(name string, f Factory) {
	key := normalizeName(name)
	if r.factories == nil {
		r.factories = map[string]Factory{}
	}
	if _, ok := r.factories[key]; !ok {
		r.names = append(r.names, name)
	}
	r.factories[key] = f
}

// Names lists the catalog in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Lookup builds the named projection. ok is false for unknown names.
func (r *Registry) Lookup(name string) (geoproj.Projection, bool) {
	f, ok := r.factories[normalizeName(name)]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Resolve returns the projection src selects. Unknown names fall back to
// the default projection, which is built directly when the registry does
// not carry it. The result is never nil.
func (r *Registry) Resolve(src Source) geoproj.Projection {
	if src != nil {
		if p := src.resolve(r); p != nil {
			return p
		}
	}
	fallback := r.fallback
	if fallback == "" {
		fallback = DefaultProjection
	}
	if p, ok := r.Lookup(fallback); ok {
		return p
	}
	return geoproj.NewAlbersUSA()
}

// Source selects a projection for Resolve: a catalog Name or a Custom
// instance.
type Source interface {
	resolve(r *Registry) geoproj.Projection
}

// Name selects a catalog entry.
type Name string

func (n Name) resolve(r *Registry) geoproj.Projection {
	p, _ := r.Lookup(string(n))
	return p
}

func (n Name) String() string { return string(n) }

type custom struct{ p geoproj.Projection }

func (c custom) resolve(*Registry) geoproj.Projection { return c.p }

// Custom selects a caller-supplied projection. It is used as is; the
// caller must not keep mutating it.
func Custom(p geoproj.Projection) Source { return custom{p} }
