package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey keys a layout by chart file hash and layout options.
	LayoutKey(chartHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by layout hash and output options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds everything besides the chart that changes a layout.
type LayoutKeyOpts struct {
	Kind        string `json:"kind"`
	Area        bool   `json:"area"`
	Stacked     bool   `json:"stacked"`
	SharedScale bool   `json:"shared_scale"`
}

// ArtifactKeyOpts holds everything besides the layout that changes an
// artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Scale     float64 `json:"scale,omitempty"`
	EmbedFont bool    `json:"embed_font,omitempty"`
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
