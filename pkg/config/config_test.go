package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kestrel-render/raycore/pkg/radiance"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should validate, got %v", err)
	}
}

func TestValidateRejectsBadMultisample(t *testing.T) {
	cfg := Default()
	cfg.Multisample = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject multisample=0")
	}
}

func TestValidateRejectsBadRussian(t *testing.T) {
	cfg := Default()
	cfg.Russian = 2
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject russian=2")
	}
	cfg.Russian = -1
	if err := cfg.Validate(); err != nil {
		t.Errorf("russian=-1 (disabled) should validate, got %v", err)
	}
}

func TestValidateRejectsUnknownBRDF(t *testing.T) {
	cfg := Default()
	cfg.BRDFDefault = "not-a-brdf"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject an unrecognized brdf name")
	}
}

func TestLoadParsesYAMLAndOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	contents := `
multisample: 64
recursion_max: 12
russian: 0.8
brdf: ltc_ggx
thinglass:
  - glass
  - window
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Multisample != 64 || cfg.RecursionMax != 12 || cfg.Russian != 0.8 {
		t.Errorf("Load() = %+v, want overridden fields", cfg)
	}
	if cfg.BRDFDefault != BRDFLTCGGX {
		t.Errorf("BRDFDefault = %q, want ltc_ggx", cfg.BRDFDefault)
	}
	if len(cfg.ThinGlass) != 2 {
		t.Errorf("ThinGlass = %v, want 2 entries", cfg.ThinGlass)
	}
	// Fields left unset in the file should keep Default()'s values.
	if cfg.Clamp != Default().Clamp {
		t.Errorf("Clamp = %v, want default %v", cfg.Clamp, Default().Clamp)
	}
}

func TestLoadRejectsMalformedConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("multisample: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject a configuration that fails Validate")
	}
}

func TestBxDFResolvesEachNamedDefault(t *testing.T) {
	for _, kind := range []BRDFKind{BRDFDiffuse, BRDFDiffuseCosine, BRDFDiffuseUniform, BRDFCookTorrance, BRDFPhongEnergy, BRDFLTCBeckmann, BRDFLTCGGX} {
		cfg := Default()
		cfg.BRDFDefault = kind
		if _, err := cfg.BxDF(radiance.White); err != nil {
			t.Errorf("BxDF() for %q returned error: %v", kind, err)
		}
	}
}
