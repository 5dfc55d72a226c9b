package sink

import (
	"bytes"

	"github.com/matzehuels/echart/pkg/render/layout"
)

// RenderJSON exports the layout in its serialization format. The output can
// be read back with layout.ReadJSON and rendered by any other sink.
func RenderJSON(l layout.Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := layout.WriteJSON(&buf, l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
