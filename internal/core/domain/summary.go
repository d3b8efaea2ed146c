package domain

import (
	"fmt"
	"strings"
)

// SummaryLines renders a payload as plain text lines for read views and
// the export raster. Image references are omitted.
func SummaryLines(c Content) []string {
	var out []string
	switch c := c.(type) {
	case ProfileContent:
		out = append(out, c.Name, c.Tagline, c.Email)
		if c.WebsiteLabel != "" {
			out = append(out, c.WebsiteLabel)
		} else if c.Website != "" {
			out = append(out, c.Website)
		}
		if len(c.Apps) > 0 {
			out = append(out, "Apps: "+joinApps(c.Apps))
		}
		if len(c.Interests) > 0 {
			out = append(out, "Interests: "+strings.Join(c.Interests, ", "))
		}

	case ExperienceContent:
		if c.Years != "" {
			out = append(out, c.Years)
		}
		for _, j := range c.Jobs {
			head := fmt.Sprintf("%s - %s (%s)", j.Company, j.Title, j.Period)
			if j.Current {
				head += " *"
			}
			out = append(out, head)
			for _, r := range j.Responsibilities {
				out = append(out, "  - "+r)
			}
		}

	case SkillsContent:
		for _, cat := range c.Categories {
			out = append(out, cat.Name+": "+strings.Join(cat.Skills, ", "))
		}

	case EducationContent:
		for _, s := range c.Schools {
			line := fmt.Sprintf("%s, %s (%s)", s.Degree, s.Type, s.Period)
			if s.Institution != "" {
				line += " - " + s.Institution
			}
			out = append(out, line)
		}

	case InterestsContent:
		out = append(out, strings.Join(c.Interests, ", "))

	case AppsContent:
		out = append(out, joinApps(c.Apps))

	case CustomContent:
		out = append(out, strings.Split(c.Text, "\n")...)

	case RawContent:
		out = append(out, "(unrecognised content)")
	}

	lines := out[:0]
	for _, l := range out {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func joinApps(apps []AppItem) string {
	names := make([]string, 0, len(apps))
	for _, a := range apps {
		if a.Icon != "" {
			names = append(names, a.Icon+" "+a.Name)
			continue
		}
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}
