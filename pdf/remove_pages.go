package pdf

// RemovePages drops the pages covered by rangeSpec and keeps the rest in
// their original order.
func (s *Studio) RemovePages(src Source, rangeSpec string) (AssembledOutput, error) {
	doc, err := s.open(src)
	if err != nil {
		return AssembledOutput{}, err
	}

	// Validate page numbers against the page count before assembling
	segments, err := ParseSegments(rangeSpec, doc.PageCount())
	if err != nil {
		return AssembledOutput{}, err
	}

	plans, err := PlanRemove(BaseName(src.Name), doc.PageCount(), segments)
	if err != nil {
		return AssembledOutput{}, err
	}
	if err := s.checkOutputPages(plans); err != nil {
		return AssembledOutput{}, err
	}
	out, err := Assemble(s.codec, plans[0], []Document{doc})
	if err != nil {
		return AssembledOutput{}, err
	}

	s.logger.Debug("removed pages", "source", src.Name, "spec", rangeSpec, "kept", len(plans[0].Pages))
	return out, nil
}
