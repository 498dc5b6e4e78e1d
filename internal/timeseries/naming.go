package timeseries

import (
	"strings"

	"resultscope/internal/errs"
)

// NamingScheme maps a statistics row identifier to the filename of the
// run's time-series artifact.
type NamingScheme interface {
	CompanionName(rowID string) (string, error)
}

// RankMarkerScheme is the OpenFAST run layout: statistics rows are named
// "{Family}_{suffix}" (suffix possibly padded with one leading zero) while
// time-series files are "{Family}_{Marker}_{unpadded suffix}{Ext}".
type RankMarkerScheme struct {
	Marker string // "0" when empty
	Ext    string // ".p" when empty
}

// DefaultScheme is the rank-0 pickle layout, IEA_22_Semi_083 -> IEA_22_Semi_0_83.p.
var DefaultScheme = RankMarkerScheme{Marker: "0", Ext: ".p"}

// CompanionName implements NamingScheme.
func (s RankMarkerScheme) CompanionName(rowID string) (string, error) {
	marker, ext := s.Marker, s.Ext
	if marker == "" {
		marker = "0"
	}
	if ext == "" {
		ext = ".p"
	}

	id := strings.TrimSpace(rowID)
	i := strings.LastIndexByte(id, '_')
	if i < 0 {
		return "", errs.Reconciliation("row identifier %q has no family separator", rowID)
	}
	head, tail := id[:i], id[i+1:]
	if len(tail) > 1 && tail[0] == '0' {
		tail = tail[1:]
	}
	return head + "_" + marker + "_" + tail + ext, nil
}
