package popup

const (
	// ZIndexStep separates ordinary sibling popups.
	ZIndexStep = 10
	// TopZIndexStep is the step for popups that must stay above everything.
	TopZIndexStep = 2000
)

// updateZIndex recomputes CurrentZIndex for every record. A parent always
// precedes its children in the list, so a single pass sees fresh parent
// values.
func (m *Manager) updateZIndex() {
	infos := make([]ItemInfo, len(m.items))
	position := make(map[string]int, len(m.items))
	for i, r := range m.items {
		position[r.ID] = i
		infos[i] = ItemInfo{
			ID:       r.ID,
			Kind:     r.Controller.Kind(),
			ParentID: r.ParentID,
			Modal:    r.Options.Modal,
			Maximize: r.Options.Maximize,
			Template: r.Options.Template,
		}
	}

	for i, r := range m.items {
		step := ZIndexStep
		if r.Options.TopPopup {
			step = TopZIndexStep
		}

		parentZ, hasParent := 0, false
		if j, ok := position[r.ParentID]; ok && r.ParentID != "" {
			parentZ, hasParent = m.items[j].CurrentZIndex, true
		}
		infos[i].ParentZIndex = parentZ

		z := (i + 1) * step
		custom := r.Options.ZIndex
		if r.Options.ZIndexCallback != nil {
			custom = r.Options.ZIndexCallback(infos[i], infos)
		}
		if custom > 0 {
			z = custom
		}
		if floor := parentZ + step; hasParent && z < floor {
			z = floor
		}
		r.CurrentZIndex = z
	}
}
