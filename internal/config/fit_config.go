package config

// FitConfig holds the scoring knobs consumed by the usecase layer.
type FitConfig struct {
	// BatchConcurrency caps in-flight (resume, job) pairs in a batch request.
	BatchConcurrency int
	// BatchMaxJobs caps the number of job ids accepted per batch request.
	BatchMaxJobs int
	// AllowDegraded returns the rule-based breakdown when embeddings fail
	// instead of failing the whole request.
	AllowDegraded bool
	// ClampScore limits the embedding score to [0,100].
	ClampScore bool
}

// GetFitConfig returns the fit scoring configuration.
func (c Config) GetFitConfig() FitConfig {
	conc := c.FitBatchConcurrency
	if conc < 1 {
		conc = 1
	}
	return FitConfig{
		BatchConcurrency: conc,
		BatchMaxJobs:     c.FitBatchMaxJobs,
		AllowDegraded:    c.FitAllowDegraded,
		ClampScore:       c.FitClampScore,
	}
}
