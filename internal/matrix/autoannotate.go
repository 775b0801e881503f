package matrix

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"keymatrix/internal/layout"
)

// AutoAnnotate infers a full (row, col) assignment for every annotatable
// key directly from geometry, without drawing. Key centers are clustered
// by y into rows (top to bottom) and independently by x into columns
// (left to right, globally rather than per row, so columns align across
// rows as in a physical matrix). Each key gets the pair of its cluster
// indices. Existing assignments are overwritten.
//
// Running it twice on an unchanged layout yields identical output, and on
// any layout where exhaustive manual two-click drawing is unambiguous it
// matches the manually-drawn result.
func (a *Annotator) AutoAnnotate() {
	keys := a.store.Keys()

	rows := clusterByAxis(keys, a.Sensitivity, func(k *layout.Key) float64 { return k.Center().Y })
	cols := clusterByAxis(keys, a.Sensitivity, func(k *layout.Key) float64 { return k.Center().X })

	for i, c := range rows {
		for _, k := range c.keys {
			a.store.SetIndex(k, Row, i)
		}
	}
	for i, c := range cols {
		for _, k := range c.keys {
			a.store.SetIndex(k, Column, i)
		}
	}
}

// axisCluster is a running cluster of key centers along one axis.
type axisCluster struct {
	mean   float64
	coords []float64
	keys   []*layout.Key
}

// clusterByAxis groups keys whose axis coordinate lies within tol of the
// running cluster mean. Keys are visited in coordinate order (stable for
// ties), so clusters come out sorted along the axis.
func clusterByAxis(keys []*layout.Key, tol float64, axis func(*layout.Key) float64) []*axisCluster {
	sorted := make([]*layout.Key, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool { return axis(sorted[i]) < axis(sorted[j]) })

	var clusters []*axisCluster
	for _, k := range sorted {
		v := axis(k)
		if n := len(clusters); n > 0 {
			c := clusters[n-1]
			d := v - c.mean
			if d < 0 {
				d = -d
			}
			if d <= tol {
				c.coords = append(c.coords, v)
				c.keys = append(c.keys, k)
				c.mean = stat.Mean(c.coords, nil)
				continue
			}
		}
		clusters = append(clusters, &axisCluster{mean: v, coords: []float64{v}, keys: []*layout.Key{k}})
	}
	return clusters
}
