package models

// ChainTable maps a space-joined word sequence (two or three lowercase words)
// to the observed next words and their occurrence counts.
type ChainTable map[string]map[string]int

// Add records one observed transition.
func (t ChainTable) Add(key, next string) {
	counts, ok := t[key]
	if !ok {
		counts = make(map[string]int)
		t[key] = counts
	}
	counts[next]++
}

// CaptionModel holds the second- and third-order transition tables built from
// one snapshot of historical captions. Immutable after construction.
type CaptionModel struct {
	Second ChainTable
	Third  ChainTable
}

func NewCaptionModel() CaptionModel {
	return CaptionModel{
		Second: make(ChainTable),
		Third:  make(ChainTable),
	}
}
