package respond

import (
	"strconv"
	"strings"
)

type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges. A missing subtype
// reads as "*" and an unparsable or out-of-range q reads as 1.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		params := strings.Split(strings.TrimSpace(part), ";")
		mt := strings.ToLower(strings.TrimSpace(params[0]))
		if mt == "" {
			continue
		}
		mr := mediaRange{q: 1}
		if typ, sub, ok := strings.Cut(mt, "/"); ok {
			mr.typ, mr.subtype = typ, sub
		} else {
			mr.typ, mr.subtype = mt, "*"
		}
		for _, p := range params[1:] {
			key, val, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || strings.ToLower(strings.TrimSpace(key)) != "q" {
				continue
			}
			if q, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil && q >= 0 && q <= 1 {
				mr.q = q
			}
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// quality returns the q of the most specific range matching application/<sub>,
// or 0 when nothing matches.
func quality(ranges []mediaRange, sub string) float64 {
	best, specificity := 0.0, -1
	for _, r := range ranges {
		s := -1
		switch {
		case r.typ == "application" && r.subtype == sub:
			s = 3
		case r.typ == "application" && r.subtype == "*+"+sub:
			s = 2
		case r.typ == "application" && r.subtype == "*":
			s = 1
		case r.typ == "*" && r.subtype == "*":
			s = 0
		}
		if s > specificity {
			best, specificity = r.q, s
		}
	}
	return best
}

// selectFormat reports whether CBOR should be used for a response. JSON wins
// ties, so wildcards and missing headers yield JSON.
func selectFormat(accept string) bool {
	ranges := parseAccept(accept)
	cbor := quality(ranges, "cbor")
	return cbor > 0 && cbor > quality(ranges, "json")
}
