package render

import (
	"mime"
	"sort"
	"strconv"
	"strings"
)

type mediaRange struct {
	media string
	q     float64
}

// Negotiate picks a renderer name for an Accept header. Media ranges are
// tried by descending q weight, ties in the order the client listed them;
// the first one with a registered renderer wins. Ranges with q=0, wildcards,
// unknown types and an empty header resolve to fallback.
func Negotiate(registry *Registry, accept, fallback string) string {
	if registry == nil {
		return fallback
	}
	for _, r := range parseAccept(accept) {
		if strings.Contains(r.media, "*") {
			continue
		}
		if name, ok := registry.ForMediaType(r.media); ok {
			return name
		}
	}
	return fallback
}

func parseAccept(accept string) []mediaRange {
	var ranges []mediaRange
	for _, part := range strings.Split(accept, ",") {
		media, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if raw, ok := params["q"]; ok {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil || parsed < 0 || parsed > 1 {
				continue
			}
			q = parsed
		}
		if q == 0 {
			continue
		}
		ranges = append(ranges, mediaRange{media: media, q: q})
	}
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].q > ranges[j].q
	})
	return ranges
}
