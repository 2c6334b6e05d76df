package driver

// DecodeShotsBitPacked decodes a batch of shots packed the way Stim
// packs detection-event and observable-flip data: one bit per
// detector/observable, LSB-first within each byte, shots laid out back
// to back. It exists for callers (batch samplers, external decoder
// harnesses) that already have data in that format and would otherwise
// pay to unpack and repack it themselves.
func (m *Matching) DecodeShotsBitPacked(dets []byte, numShots, numDets, numObs int) ([]byte, error) {
	detBytes := (numDets + 7) / 8
	obsBytes := (numObs + 7) / 8
	out := make([]byte, 0, numShots*obsBytes)

	syndrome := make([]byte, numDets)
	for shot := 0; shot < numShots; shot++ {
		shotDets := dets[shot*detBytes : (shot+1)*detBytes]

		for d := 0; d < numDets; d++ {
			syndrome[d] = 0
			if shotDets[d/8]&(1<<uint(d%8)) != 0 {
				syndrome[d] = 1
			}
		}

		predictions, err := m.Decode(syndrome)
		if err != nil {
			return nil, err
		}

		packed := make([]byte, obsBytes)
		for o, v := range predictions {
			if v != 0 {
				packed[o/8] |= 1 << uint(o%8)
			}
		}
		out = append(out, packed...)
	}

	return out, nil
}
