package gantt

// Validate checks that a built document is complete enough to chart. Strict
// mode also requires the title, state and goals sections.
func Validate(doc *Document, strict bool) error {
	if strict {
		if doc.Plan.Title == "" {
			return &MissingDataError{Message: "need a nonempty title"}
		}
		if doc.Plan.State == "" {
			return &MissingDataError{Message: "need a nonempty state"}
		}
		if doc.Plan.Goals == "" {
			return &MissingDataError{Message: "need nonempty goals"}
		}
	}
	if len(doc.Plan.Tasks) == 0 {
		return &MissingDataError{Message: "no tasks to plot"}
	}
	return nil
}
