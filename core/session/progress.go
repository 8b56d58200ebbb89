package session

import "math"

// Progress derives a 0-100 completion percentage from a fixed subset of the
// Session: all StudentInfo and ContactInfo fields, every document checklist
// item and all Reflection fields. Attendees, decisions, question notes,
// follow-up items and family-discussion fields are deliberately not counted;
// the weighting is part of the product behavior.
func Progress(s Session) int {
	var filled, total int

	count := func(values ...string) {
		for _, v := range values {
			total++
			if v != "" {
				filled++
			}
		}
	}

	count(
		s.StudentInfo.Name,
		s.StudentInfo.Grade,
		s.StudentInfo.School,
		s.StudentInfo.MeetingDate,
		s.StudentInfo.MeetingType,
		s.StudentInfo.PrimaryConcerns,
	)
	count(
		s.ContactInfo.Name,
		s.ContactInfo.Phone,
		s.ContactInfo.Email,
	)

	for _, d := range s.Documents {
		total++
		if d.Checked {
			filled++
		}
	}

	count(
		s.Reflection.TopConcerns,
		s.Reflection.Strengths,
		s.Reflection.Challenges,
		s.Reflection.HomeSupports,
	)

	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(filled) / float64(total)))
}
