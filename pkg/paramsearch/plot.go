package paramsearch

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PrintBestScores emits the points.m diagnostic artifact (§6.3): an
// Octave/MATLAB-compatible script plotting the trajectory of the
// best-scores log, one vector per search-space dimension. This mirrors
// the original library's plotting-script emitter byte-for-format: an `x`
// index vector, one `y{i}` assignment plus `plot` call per dimension
// (underscores in dimension names rendered as spaces for the legend), and
// a trailing `legend`/`hold off`.
func (m *TaskManager) PrintBestScores(w io.Writer, dims []Dimension) error {
	best := m.BestScores()

	if _, err := fmt.Fprintf(w, "x = [1:%d];\n", len(best)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "figure(1);\nhold on;\n"); err != nil {
		return err
	}

	for i, dim := range dims {
		values := make([]string, len(best))
		for j, ps := range best {
			coords := ps.Point.Coordinates()
			v := 0
			if i < len(coords) {
				v = coords[i]
			}
			values[j] = strconv.Itoa(v)
		}
		label := strings.ReplaceAll(dim.Name, "_", " ")
		if _, err := fmt.Fprintf(w, "y{%d} = [%s];\n", i+1, strings.Join(values, ", ")); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "plot(x,y{%d},'DisplayName','%s');\n", i+1, label); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "legend;\nhold off;\n")
	return err
}
