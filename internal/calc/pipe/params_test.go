package pipe

import "testing"

func TestWithDefaultsFillsZeroFields(t *testing.T) {
	got := DesignParameters{}.WithDefaults()
	if got != DefaultParameters() {
		t.Errorf("zero parameters resolved to %+v, want the defaults", got)
	}
}

func TestWithDefaultsKeepsOverrides(t *testing.T) {
	in := DesignParameters{SoilModulusMNM2: 10, OvalLimitPct: 3, Perforated: true}
	got := in.WithDefaults()
	if got.SoilModulusMNM2 != 10 || got.OvalLimitPct != 3 || !got.Perforated {
		t.Errorf("overrides were lost: %+v", got)
	}
	if got.EmbedModulusMNM2 != 10 || got.SoilDensityKNM3 != 19.6 || got.MinFOSBucklingSoil != 2.0 {
		t.Errorf("unset fields were not defaulted: %+v", got)
	}
	if got.InvertLevelM != 0 {
		t.Errorf("invert level must stay unset, got %g", got.InvertLevelM)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*DesignParameters)
	}{
		{"negative soil modulus", func(p *DesignParameters) { p.SoilModulusMNM2 = -3 }},
		{"negative embedment modulus", func(p *DesignParameters) { p.EmbedModulusMNM2 = -10 }},
		{"negative soil density", func(p *DesignParameters) { p.SoilDensityKNM3 = -19.6 }},
		{"negative water density", func(p *DesignParameters) { p.WaterDensityKNM3 = -10 }},
		{"negative pipe modulus", func(p *DesignParameters) { p.LongModulusNMM2 = -150 }},
		{"negative ovalisation limit", func(p *DesignParameters) { p.OvalLimitPct = -5 }},
		{"negative partial factor", func(p *DesignParameters) { p.GammaUnfavourable = -1.1 }},
		{"negative FOS floor", func(p *DesignParameters) { p.MinFOSBucklingAir = -1.5 }},
		{"negative tamping depth", func(p *DesignParameters) { p.MinTampingDepthM = -0.4 }},
		{"negative trench allowance", func(p *DesignParameters) { p.TrenchAllowanceMM = -300 }},
		{"reduction above one", func(p *DesignParameters) { p.PerforationReduction = 1.2 }},
		{"negative invert level", func(p *DesignParameters) { p.InvertLevelM = -0.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParameters()
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Errorf("Validate accepted %s", tc.name)
			}
		})
	}
	if err := DefaultParameters().Validate(); err != nil {
		t.Errorf("Validate rejected the defaults: %v", err)
	}
}
