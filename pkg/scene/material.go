package scene

import (
	"strings"

	"github.com/kestrel-render/raycore/pkg/bxdf"
	"github.com/kestrel-render/raycore/pkg/radiance"
	"github.com/kestrel-render/raycore/pkg/texture"
)

// Material is shared, read-only once the owning Scene is committed.
type Material struct {
	Name string

	Diffuse, Specular, Ambient radiance.Spectrum
	DiffuseTex, SpecularTex, AmbientTex, BumpTex *texture.Texture

	Emission radiance.Spectrum
	BxDF     *bxdf.BxDF

	Shininess float64
	IOR       float64
	Opacity   float64 // 1 = opaque, <1 = translucent

	// ThinGlass is derived at Commit from the configured name-substring
	// set; the intersector skips such triangles for hit purposes.
	ThinGlass bool
}

// Translucent reports whether the material refracts (opacity < 1).
func (m *Material) Translucent() bool { return m.Opacity < 1 }

// DeriveThinGlass sets m.ThinGlass if the material's name contains any of
// the configured substrings. Called once per material at Commit.
func (m *Material) DeriveThinGlass(substrings []string) {
	for _, s := range substrings {
		if s != "" && strings.Contains(m.Name, s) {
			m.ThinGlass = true
			return
		}
	}
}
