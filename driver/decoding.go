package driver

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/qecmatch/dem"
	"github.com/katalvlaran/qecmatch/flooder"
	"github.com/katalvlaran/qecmatch/ids"
	"github.com/katalvlaran/qecmatch/interop"
	"github.com/katalvlaran/qecmatch/matcher"
)

// Matching is the public decoder: a UserGraph plus a lazily built and
// cached matcher.Matcher. Any mutation to the underlying graph
// invalidates the cache so the next decode rebuilds it.
type Matching struct {
	userGraph *UserGraph
	mwpm      *matcher.Matcher
}

// NewMatching returns an empty Matching with no edges.
func NewMatching() *Matching {
	return &Matching{userGraph: NewUserGraph()}
}

// FromDEM builds a Matching from Stim-style detector error model text.
func FromDEM(demText string) (*Matching, error) {
	ug := NewUserGraph()
	if err := dem.Parse(demText, ug); err != nil {
		return nil, errors.Wrap(err, "driver: parsing detector error model")
	}

	return &Matching{userGraph: ug}, nil
}

// AddEdge adds a detector-to-detector edge and invalidates the matcher
// cache.
func (m *Matching) AddEdge(n1, n2 int, weight float64, observables []int, errorProbability float64) {
	m.userGraph.AddEdge(n1, n2, observables, weight, errorProbability)
	m.mwpm = nil
}

// AddBoundaryEdge adds a detector-to-boundary edge and invalidates the
// matcher cache.
func (m *Matching) AddBoundaryEdge(node int, weight float64, observables []int, errorProbability float64) {
	m.userGraph.AddBoundaryEdge(node, observables, weight, errorProbability)
	m.mwpm = nil
}

// SetBoundary marks nodes as boundary nodes and invalidates the matcher
// cache.
func (m *Matching) SetBoundary(boundary []int) {
	m.userGraph.SetBoundary(boundary)
	m.mwpm = nil
}

// UserGraph exposes the underlying UserGraph for read-only inspection
// (GetNumEdges, GetNumNodes, GetNumDetectors, IsBoundaryNode).
func (m *Matching) UserGraph() *UserGraph { return m.userGraph }

func (m *Matching) getMwpm() *matcher.Matcher {
	if m.mwpm == nil {
		mg := m.userGraph.ToMatchingGraph(NumDistinctWeights)
		m.mwpm = matcher.New(flooder.New(mg))
	}

	return m.mwpm
}

// Edge is one matched pair reported by DecodeToEdges; To is -1 when the
// match is to the boundary.
type Edge struct {
	From int64
	To   int64
}

// Decode converts a syndrome (one byte per detector, non-zero meaning
// "fired") into a prediction (one byte per observable, 0 or 1).
func (m *Matching) Decode(syndrome []byte) ([]byte, error) {
	mw := m.getMwpm()
	numObservables := mw.Flooder.Graph.NumObservables

	detectionEvents := syndromeToDetectionEvents(syndrome)
	negObsMask := mw.Flooder.Graph.NegativeWeightObsMask
	effective := applyNegativeWeightEvents(detectionEvents, mw.Flooder.Graph.NegativeWeightDetectionEvents, mw.Flooder.Graph.IsUserGraphBoundaryNode)

	runTimelineToCompletion(mw, effective)

	res := shatterAndExtract(mw, effective)
	res.ObsMask ^= negObsMask

	predictions := obsMaskToPredictions(res.ObsMask, numObservables)
	mw.Reset()

	return predictions, nil
}

// DecodeBatch decodes each syndrome independently, matching Decode
// shot-by-shot.
func (m *Matching) DecodeBatch(syndromes [][]byte) ([][]byte, error) {
	out := make([][]byte, len(syndromes))
	for i, s := range syndromes {
		predictions, err := m.Decode(s)
		if err != nil {
			return nil, errors.Wrapf(err, "shot %d", i)
		}
		out[i] = predictions
	}

	return out, nil
}

// DecodeToEdges decodes a syndrome and reports the matched detector
// pairs directly, rather than folding them into observable predictions.
// A boundary match is reported with To == -1.
func (m *Matching) DecodeToEdges(syndrome []byte) ([]Edge, error) {
	mw := m.getMwpm()

	detectionEvents := syndromeToDetectionEvents(syndrome)
	effective := applyNegativeWeightEvents(detectionEvents, mw.Flooder.Graph.NegativeWeightDetectionEvents, mw.Flooder.Graph.IsUserGraphBoundaryNode)

	runTimelineToCompletion(mw, effective)

	edges := extractMatchEdges(mw, effective)
	mw.Reset()

	return edges, nil
}

func syndromeToDetectionEvents(syndrome []byte) []int {
	var events []int
	for i, v := range syndrome {
		if v != 0 {
			events = append(events, i)
		}
	}

	return events
}

// applyNegativeWeightEvents XORs detectionEvents with the graph's fixed
// negative-weight detection-event set (symmetric difference) and drops
// anything the user graph flagged as a boundary node.
func applyNegativeWeightEvents(detectionEvents []int, negDetSet map[int]struct{}, isBoundary []bool) []int {
	boundaryFilter := func(d int) bool { return d >= len(isBoundary) || !isBoundary[d] }

	if len(negDetSet) == 0 {
		var out []int
		for _, d := range detectionEvents {
			if boundaryFilter(d) {
				out = append(out, d)
			}
		}

		return out
	}

	active := make(map[int]struct{}, len(detectionEvents))
	for _, d := range detectionEvents {
		active[d] = struct{}{}
	}
	for d := range negDetSet {
		if _, ok := active[d]; ok {
			delete(active, d)
		} else {
			active[d] = struct{}{}
		}
	}

	result := make([]int, 0, len(active))
	for d := range active {
		if boundaryFilter(d) {
			result = append(result, d)
		}
	}
	sortInts(result)

	return result
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func runTimelineToCompletion(mw *matcher.Matcher, detectionEvents []int) {
	numNodes := len(mw.Flooder.Graph.Nodes)
	for _, det := range detectionEvents {
		if det >= numNodes {
			continue
		}
		mw.CreateDetectionEvent(ids.NodeIndex(det))
	}

	for {
		event := mw.Flooder.RunUntilNextMwpmNotification()
		if event.Kind == interop.NoEvent {
			break
		}
		mw.ProcessEvent(event)
	}
}

func shatterAndExtract(mw *matcher.Matcher, detectionEvents []int) matcher.MatchingResult {
	var res matcher.MatchingResult
	numNodes := len(mw.Flooder.Graph.Nodes)

	for _, i := range detectionEvents {
		if i >= numNodes || !mw.Flooder.Graph.Nodes[i].RegionThatArrived.Valid() {
			continue
		}

		top := mw.Flooder.Graph.Nodes[i].RegionThatArrivedTop
		nodesToClean := collectShellNodes(mw.Flooder, top)

		topRegion := mw.Flooder.Region(top)
		if topRegion.HasMatch && topRegion.Match.HasRegion {
			nodesToClean = append(nodesToClean, collectShellNodes(mw.Flooder, topRegion.Match.Region)...)
		}

		res.Add(mw.ShatterBlossomAndExtractMatches(top))

		for _, node := range nodesToClean {
			mw.Flooder.Graph.Nodes[node].Reset()
		}
	}

	return res
}

// collectShellNodes gathers every detector node in region's shell area
// and, recursively, in every blossom child's shell area, so they can be
// reset only after shattering has finished reading the arena.
func collectShellNodes(fl *flooder.Flooder, region ids.RegionIndex) []ids.NodeIndex {
	r := fl.Region(region)
	nodes := append([]ids.NodeIndex(nil), r.ShellArea...)
	for _, child := range r.BlossomChildren {
		nodes = append(nodes, collectShellNodes(fl, child.Region)...)
	}

	return nodes
}

func extractMatchEdges(mw *matcher.Matcher, detectionEvents []int) []Edge {
	var edges []Edge
	numNodes := len(mw.Flooder.Graph.Nodes)

	for _, i := range detectionEvents {
		if i >= numNodes || !mw.Flooder.Graph.Nodes[i].RegionThatArrived.Valid() {
			continue
		}

		top := mw.Flooder.Graph.Nodes[i].RegionThatArrivedTop
		region := mw.Flooder.Region(top)
		if !region.HasMatch {
			continue
		}

		from := int64(i)
		to := int64(region.Match.Edge.LocTo)

		if to == -1 || from <= to {
			edges = append(edges, Edge{From: from, To: to})
		}
	}

	return edges
}

func obsMaskToPredictions(mask ids.ObsMask, numObservables int) []byte {
	predictions := make([]byte, numObservables)
	for i := 0; i < numObservables; i++ {
		predictions[i] = byte((mask >> uint(i)) & 1)
	}

	return predictions
}
