package floorplan

import "slices"

// Selection is the ordered list of chosen table ids.
type Selection []uint64

// Toggle adds id at the end, or removes it when already present.
func (s Selection) Toggle(id uint64) Selection {
	if i := slices.Index(s, id); i >= 0 {
		return slices.Delete(slices.Clone(s), i, i+1)
	}
	return append(slices.Clone(s), id)
}

func (s Selection) Has(id uint64) bool { return slices.Contains(s, id) }

func (s Selection) Empty() bool { return len(s) == 0 }
