package render

import (
	"strings"

	"github.com/dshills/atscritic/internal/resume"
)

// Preview renders a record as a plain-text résumé with upper-case section
// headings, the layout ATS parsers read most reliably.
func Preview(rec resume.Record) string {
	var lines []string

	lines = append(lines, strings.ToUpper(rec.FullName))
	var contact []string
	for _, c := range []string{rec.Phone, rec.Email, rec.LinkedIn} {
		if c != "" {
			contact = append(contact, c)
		}
	}
	if rec.City != "" {
		contact = append(contact, rec.City+", "+rec.Country)
	}
	if rec.GitHub != "" {
		contact = append(contact, rec.GitHub)
	}
	lines = append(lines, strings.Join(contact, " | "), "")

	section := func(title string, body func()) {
		lines = append(lines, strings.ToUpper(title), strings.Repeat("-", len(title)))
		body()
		lines = append(lines, "")
	}
	bullets := func(text string) {
		for _, l := range strings.Split(text, "\n") {
			if l = strings.TrimSpace(l); l != "" {
				lines = append(lines, "- "+l)
			}
		}
	}

	if rec.Summary != "" {
		section("Professional Summary", func() { lines = append(lines, rec.Summary) })
	}
	if rec.Skills != "" {
		section("Skills", func() { lines = append(lines, rec.Skills) })
	}
	if len(rec.Experience) > 0 {
		section("Work Experience", func() {
			for _, e := range rec.Experience {
				lines = append(lines, e.Company+" | "+e.Location)
				lines = append(lines, e.Title+" | "+e.StartDate+" - "+e.EndDate)
				bullets(e.Responsibilities)
				lines = append(lines, "")
			}
		})
	}
	if len(rec.Projects) > 0 {
		section("Projects", func() {
			for _, p := range rec.Projects {
				lines = append(lines, p.Name)
				bullets(p.Description)
				lines = append(lines, "")
			}
		})
	}
	if len(rec.Education) > 0 {
		section("Education", func() {
			for _, e := range rec.Education {
				lines = append(lines, e.Institution, e.Degree+" | "+e.Year, "")
			}
		})
	}
	if len(rec.Certifications) > 0 {
		section("Certifications", func() {
			for _, c := range rec.Certifications {
				if c = strings.TrimSpace(c); c != "" {
					lines = append(lines, "- "+c)
				}
			}
		})
	}

	return strings.Join(lines, "\n")
}
