package anomaly

import (
	"math"
	"math/rand/v2"

	"github.com/otherjamesbrown/chatpulse/pkg/analytics/stats"
	chaterrors "github.com/otherjamesbrown/chatpulse/pkg/errors"
)

const (
	analyticName   = "anomalies"
	maxTreeSamples = 256
	eulerGamma     = 0.5772156649015329
)

// node is either a split (left/right set) or a leaf holding size rows.
type node struct {
	feature     int
	threshold   float64
	left, right *node
	size        int
}

// forest is an isolation forest: an ensemble of random trees in which
// anomalies are isolated on short paths.
type forest struct {
	trees   []*node
	samples int
	offset  float64
}

// fitForest builds trees over rows and calibrates the decision offset so that
// roughly contamination of the rows score below zero.
func fitForest(rows [][]float64, trees int, contamination float64, seed uint64) (*forest, error) {
	n := len(rows)
	if n < 2 {
		return nil, chaterrors.NewAnalyticError(chaterrors.ErrInsufficientData, analyticName, "need at least 2 rows, got %d", n)
	}
	for _, r := range rows {
		if err := chaterrors.CheckFinite(analyticName, r); err != nil {
			return nil, err
		}
	}
	if trees < 1 {
		trees = 1
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	psi := min(maxTreeSamples, n)
	maxDepth := int(math.Ceil(math.Log2(float64(psi))))

	f := &forest{trees: make([]*node, trees), samples: psi}
	for t := range f.trees {
		idx := rng.Perm(n)[:psi]
		sample := make([][]float64, psi)
		for i, j := range idx {
			sample[i] = rows[j]
		}
		f.trees[t] = grow(sample, 0, maxDepth, rng)
	}

	scores := f.score(rows)
	f.offset = stats.Percentile(scores, 100*contamination)
	return f, nil
}

func grow(rows [][]float64, depth, maxDepth int, rng *rand.Rand) *node {
	if depth >= maxDepth || len(rows) <= 1 {
		return &node{size: len(rows)}
	}

	// Candidate features are those that still vary within the node.
	dims := len(rows[0])
	lo := make([]float64, dims)
	hi := make([]float64, dims)
	for d := 0; d < dims; d++ {
		lo[d], hi[d] = math.Inf(1), math.Inf(-1)
	}
	for _, r := range rows {
		for d, x := range r {
			lo[d] = math.Min(lo[d], x)
			hi[d] = math.Max(hi[d], x)
		}
	}
	varying := make([]int, 0, dims)
	for d := 0; d < dims; d++ {
		if hi[d] > lo[d] {
			varying = append(varying, d)
		}
	}
	if len(varying) == 0 {
		return &node{size: len(rows)}
	}

	feature := varying[rng.IntN(len(varying))]
	threshold := lo[feature] + rng.Float64()*(hi[feature]-lo[feature])

	left := make([][]float64, 0, len(rows))
	right := make([][]float64, 0, len(rows))
	for _, r := range rows {
		if r[feature] < threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return &node{
		feature:   feature,
		threshold: threshold,
		left:      grow(left, depth+1, maxDepth, rng),
		right:     grow(right, depth+1, maxDepth, rng),
		size:      len(rows),
	}
}

// pathLength is the depth at which x lands plus the expected remaining depth
// of the unbuilt subtree below that leaf.
func pathLength(n *node, x []float64) float64 {
	depth := 0.0
	for n.left != nil {
		if x[n.feature] < n.threshold {
			n = n.left
		} else {
			n = n.right
		}
		depth++
	}
	return depth + averagePath(n.size)
}

// averagePath is the mean path length of an unsuccessful BST search over n
// points.
func averagePath(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	}
	fn := float64(n)
	return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
}

// score returns -2^(-E[h]/c(psi)) per row; lower is more anomalous.
func (f *forest) score(rows [][]float64) []float64 {
	c := averagePath(f.samples)
	out := make([]float64, len(rows))
	for i, x := range rows {
		sum := 0.0
		for _, t := range f.trees {
			sum += pathLength(t, x)
		}
		mean := sum / float64(len(f.trees))
		if c == 0 {
			out[i] = -1
			continue
		}
		out[i] = -math.Pow(2, -mean/c)
	}
	return out
}

// decision shifts scores by the calibrated offset; negative means outlier.
func (f *forest) decision(rows [][]float64) []float64 {
	s := f.score(rows)
	for i := range s {
		s[i] -= f.offset
	}
	return s
}
