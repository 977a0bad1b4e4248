package config

// Merge overlays a loaded config on top of defaults. Zero-valued fields in
// loaded keep their default; lists replace wholesale rather than append.
func Merge(defaults, loaded *Config) *Config {
	out := *defaults
	if loaded == nil {
		return &out
	}

	if loaded.Model.Repository != "" {
		out.Model.Repository = loaded.Model.Repository
	}
	if loaded.Model.CommitSHA != "" {
		out.Model.CommitSHA = loaded.Model.CommitSHA
	}
	if loaded.Model.Weights != "" {
		out.Model.Weights = loaded.Model.Weights
	}
	if loaded.Model.TCRWeights != "" {
		out.Model.TCRWeights = loaded.Model.TCRWeights
	}
	if len(loaded.Runner) > 0 {
		out.Runner = loaded.Runner
	}
	if loaded.CacheDir != "" {
		out.CacheDir = loaded.CacheDir
	}
	if loaded.OutputDir != "" {
		out.OutputDir = loaded.OutputDir
	}
	if loaded.Scwrl != "" {
		out.Scwrl = loaded.Scwrl
	}
	if loaded.Modeller.Python != "" {
		out.Modeller.Python = loaded.Modeller.Python
	}
	if loaded.Modeller.Script != "" {
		out.Modeller.Script = loaded.Modeller.Script
	}
	if loaded.Server.Addr != "" {
		out.Server.Addr = loaded.Server.Addr
	}
	if len(loaded.Server.AllowOrigins) > 0 {
		out.Server.AllowOrigins = loaded.Server.AllowOrigins
	}
	if len(loaded.Ignore) > 0 {
		out.Ignore = loaded.Ignore
	}
	return &out
}
