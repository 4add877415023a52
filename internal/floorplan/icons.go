package floorplan

import "html/template"

var icons = map[int]template.HTML{
	2: `<svg class="table-icon" viewBox="0 0 100 100"><rect x="30" y="25" width="40" height="50" rx="5"/><circle cx="50" cy="10" r="8"/><circle cx="50" cy="90" r="8"/></svg>`,
	4: `<svg class="table-icon" viewBox="0 0 100 100"><rect x="25" y="25" width="50" height="50" rx="5"/><circle cx="10" cy="50" r="8"/><circle cx="90" cy="50" r="8"/><circle cx="50" cy="10" r="8"/><circle cx="50" cy="90" r="8"/></svg>`,
	6: `<svg class="table-icon" viewBox="0 0 100 100"><rect x="20" y="25" width="60" height="50" rx="5"/><circle cx="10" cy="50" r="8"/><circle cx="90" cy="50" r="8"/><circle cx="35" cy="10" r="8"/><circle cx="65" cy="10" r="8"/><circle cx="35" cy="90" r="8"/><circle cx="65" cy="90" r="8"/></svg>`,
}

// Icon returns the seating icon for a capacity; unsupported capacities get
// the four-seat icon.
func Icon(capacity int) template.HTML {
	if svg, ok := icons[capacity]; ok {
		return svg
	}
	return icons[4]
}
