package dem

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Builder receives the effect of each parsed instruction. driver.UserGraph
// is the production implementation; tests may supply a fake to assert on
// the instruction sequence without building a full graph.
type Builder interface {
	// EnsureNode grows the builder's node set so index idx exists.
	EnsureNode(idx int)
	// HandleError records an error(p) instruction: 1 detector means a
	// boundary edge, 2 detectors means a detector-to-detector edge, any
	// other count (0, or >2 after truncating at '^') is a no-op.
	HandleError(p float64, detectors []int, observables []int)
}

// Parse reads a complete DEM text and feeds every error/detector/repeat
// instruction it finds to b. The returned error, if any, is wrapped with
// the offending line number.
func Parse(text string, b Builder) error {
	lines := strings.Split(text, "\n")
	_, err := parseBlock(lines, b, 0)
	return err
}

// parseBlock parses lines into b under detectorOffset, returning the
// largest raw (pre-offset) detector index it saw so a repeat block can
// derive its per-iteration shift.
func parseBlock(lines []string, b Builder, detectorOffset int) (int, error) {
	maxDetector := 0
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "#") {
			i++
			continue
		}

		switch {
		case strings.HasPrefix(line, "error"):
			det, err := parseErrorLine(line, b, detectorOffset)
			if err != nil {
				return 0, errors.Wrapf(err, "line %d", i+1)
			}
			maxDetector = max(maxDetector, det)
		case strings.HasPrefix(line, "detector"):
			det, err := parseDetectorLine(line, b, detectorOffset)
			if err != nil {
				return 0, errors.Wrapf(err, "line %d", i+1)
			}
			maxDetector = max(maxDetector, det)
		case strings.HasPrefix(line, "repeat"):
			det, consumed, err := parseRepeat(lines, i, b, detectorOffset)
			if err != nil {
				return 0, errors.Wrapf(err, "line %d", i+1)
			}
			maxDetector = max(maxDetector, det)
			i += consumed
			continue
		}
		i++
	}

	return maxDetector, nil
}

// parseErrorLine parses "error(p) D<i> [D<j>] [L<k> ...] [^ ...]".
// Correlated-error components after '^' are ignored: this decoder only
// needs the primary symmetric-difference term.
func parseErrorLine(line string, b Builder, detectorOffset int) (int, error) {
	if caret := strings.IndexByte(line, '^'); caret >= 0 {
		line = line[:caret]
	}

	open := strings.IndexByte(line, '(')
	if open < 0 {
		return 0, errors.New("error line missing '('")
	}
	closeIdx := strings.IndexByte(line, ')')
	if closeIdx < 0 {
		return 0, errors.New("error line missing ')'")
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(line[open+1:closeIdx]), 64)
	if err != nil {
		return 0, errors.Wrap(err, "bad probability")
	}

	var detectors, observables []int
	maxDet := 0
	for _, token := range strings.Fields(line[closeIdx+1:]) {
		switch {
		case strings.HasPrefix(token, "D"):
			idx, err := strconv.Atoi(token[1:])
			if err != nil {
				return 0, errors.Wrap(err, "bad detector index")
			}
			maxDet = max(maxDet, idx)
			detectors = append(detectors, idx+detectorOffset)
		case strings.HasPrefix(token, "L"):
			idx, err := strconv.Atoi(token[1:])
			if err != nil {
				return 0, errors.Wrap(err, "bad observable index")
			}
			observables = append(observables, idx)
		}
	}

	b.HandleError(p, detectors, observables)

	return maxDet, nil
}

// parseDetectorLine parses "detector D<i> [coords...]", ensuring the
// node exists; coordinates are ignored.
func parseDetectorLine(line string, b Builder, detectorOffset int) (int, error) {
	fields := strings.Fields(line)
	for _, token := range fields[1:] {
		if !strings.HasPrefix(token, "D") {
			continue
		}
		idx, err := strconv.Atoi(token[1:])
		if err != nil {
			return 0, errors.Wrap(err, "bad detector index")
		}
		b.EnsureNode(idx + detectorOffset)

		return idx, nil
	}

	return 0, nil
}

// parseRepeat parses a "repeat N { ... }" block starting at lines[start].
// The shift applied to detector indices on each iteration is either an
// explicit shift_detectors instruction inside the body, or one more than
// the largest detector index the body touches.
func parseRepeat(lines []string, start int, b Builder, detectorOffset int) (overallMax, consumed int, err error) {
	header := strings.TrimSpace(lines[start])
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return 0, 0, errors.New("repeat missing count")
	}
	count, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errors.Wrap(err, "bad repeat count")
	}

	var body []string
	depth := 0
	end := start
	for j, l := range lines[start:] {
		trimmed := strings.TrimSpace(l)
		if strings.Contains(trimmed, "{") {
			depth++
		}
		if strings.Contains(trimmed, "}") {
			depth--
			if depth == 0 {
				end = start + j
				break
			}
		}
		if j > 0 && depth > 0 {
			body = append(body, l)
		}
	}

	explicitShift, hasShift := findShiftDetectors(body)

	scratch := &nullBuilder{}
	maxDetInBody, err := parseBlock(body, scratch, 0)
	if err != nil {
		return 0, 0, err
	}

	shiftPerIter := maxDetInBody + 1
	if hasShift {
		shiftPerIter = explicitShift
	}

	overallMax = 0
	for iteration := 0; iteration < count; iteration++ {
		iterOffset := detectorOffset + iteration*shiftPerIter
		det, err := parseBlock(body, b, iterOffset)
		if err != nil {
			return 0, 0, err
		}
		overallMax = max(overallMax, det+iterOffset)
	}

	return overallMax, end - start + 1, nil
}

// findShiftDetectors looks for "shift_detectors N" inside a repeat body.
func findShiftDetectors(lines []string) (int, bool) {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "shift_detectors") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			continue
		}
		if val, err := strconv.Atoi(fields[1]); err == nil {
			return val, true
		}
	}

	return 0, false
}

// nullBuilder discards every call; used for the first, offset-0 pass
// over a repeat body that only discovers its maximum detector index.
type nullBuilder struct{}

func (*nullBuilder) EnsureNode(int)                    {}
func (*nullBuilder) HandleError(float64, []int, []int) {}
