package colors

// Pair is the colour pair of one series: Line strokes the series path,
// Area fills the region below it (and bars in column charts).
type Pair struct {
	Line ARGB `json:"line"`
	Area ARGB `json:"area"`
}

// PaletteSize is the number of default series colours.
const PaletteSize = 20

// palette holds the default series colours, indexed by insertion order.
// Area entries are the line colour blended 55% towards white.
var palette = [PaletteSize]Pair{
	{Line: 0xff1f77b4, Area: 0xff9ac2dd},
	{Line: 0xffff7f0e, Area: 0xffffc593},
	{Line: 0xff2ca02c, Area: 0xffa0d4a0},
	{Line: 0xffd62728, Area: 0xffed9e9e},
	{Line: 0xff9467bd, Area: 0xffcfbbe1},
	{Line: 0xff8c564b, Area: 0xffcbb3ae},
	{Line: 0xffe377c2, Area: 0xfff2c2e4},
	{Line: 0xff7f7f7f, Area: 0xffc5c5c5},
	{Line: 0xffbcbd22, Area: 0xffe1e19c},
	{Line: 0xff17becf, Area: 0xff97e2e9},
	{Line: 0xff393b79, Area: 0xffa6a7c3},
	{Line: 0xff637939, Area: 0xffb9c3a6},
	{Line: 0xff8c6d31, Area: 0xffcbbda2},
	{Line: 0xff843c39, Area: 0xffc8a7a6},
	{Line: 0xff7b4173, Area: 0xffc4aac0},
	{Line: 0xff3182bd, Area: 0xffa2c7e1},
	{Line: 0xffe6550d, Area: 0xfff4b292},
	{Line: 0xff31a354, Area: 0xffa2d6b2},
	{Line: 0xff756bb1, Area: 0xffc1bcdc},
	{Line: 0xff636363, Area: 0xffb9b9b9},
}

// Default returns the palette entry for the k-th series. ok is false when k
// is outside the palette.
func Default(k int) (p Pair, ok bool) {
	if k < 0 || k >= PaletteSize {
		return Pair{}, false
	}
	return palette[k], true
}

// PairFrom derives a pair from a single line colour, lightening it for the
// area fill.
func PairFrom(line ARGB) Pair {
	return Pair{Line: line, Area: Lighten(line, 0.55)}
}
