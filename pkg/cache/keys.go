package cache

// RunKeyOpts holds every option that changes the outcome of a run.
type RunKeyOpts struct {
	Kind           string  `json:"kind"`
	MaxGenerations int     `json:"max_generations"`
	Candidates     int     `json:"candidates"`
	Seed           uint64  `json:"seed"`
	ScaleMin       float64 `json:"scale_min"`
	ScaleMax       float64 `json:"scale_max"`
	MaxAngle       float64 `json:"max_angle"`
	MaxSize        int     `json:"max_size"`
}

// Keyer generates cache keys.
type Keyer interface {
	// RunKey returns the key for a run over the target with the given
	// content hash.
	RunKey(targetHash string, opts RunKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RunKey implements Keyer.
func (DefaultKeyer) RunKey(targetHash string, opts RunKeyOpts) string {
	return hashKey("run", targetHash, opts)
}
