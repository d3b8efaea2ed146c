package domain

// DefaultProfileImage is the placeholder used by new profile sections.
const DefaultProfileImage = "https://placehold.co/200x200"

var defaultResponsibilities = []string{
	"Responsibility 1: Description goes here",
	"Responsibility 2: Description goes here",
	"Responsibility 3: Description goes here",
}

var defaultSkills = []string{"Skill 1", "Skill 2", "Skill 3", "Skill 4"}

// DefaultContent returns a fully populated example payload for a section
// type. Arrays are never empty so read views always have something to show.
// Unknown types get an empty custom payload.
func DefaultContent(t SectionType) Content {
	switch t {
	case SectionProfile:
		return ProfileContent{
			Name:         "Your Name",
			Tagline:      "Your Title, Location",
			Email:        "email@example.com",
			Website:      "https://yourwebsite.com",
			WebsiteLabel: "yourwebsite.com",
			ProfileImage: DefaultProfileImage,
			Apps: []AppItem{
				{Name: "App 1", Color: "#3b82f6"},
				{Name: "App 2", Color: "#8b5cf6"},
				{Name: "App 3", Color: "#6366f1"},
			},
			Interests: []string{"Coding", "Design", "Music", "Travel"},
		}

	case SectionExperience:
		return ExperienceContent{
			Years: "0+ years",
			Jobs: []JobItem{
				{
					Company:          "Company A",
					Title:            "Your Title",
					Period:           "2023 - now",
					Current:          true,
					LogoBackground:   "#ef4444",
					Responsibilities: append([]string(nil), defaultResponsibilities...),
				},
				{
					Company:          "Company B",
					Title:            "Your Previous Title",
					Period:           "2020 - 2023",
					LogoBackground:   "#f97316",
					Responsibilities: append([]string(nil), defaultResponsibilities...),
				},
			},
		}

	case SectionSkills:
		return SkillsContent{
			Categories: []SkillCategory{
				{Name: "Category 1", Skills: append([]string(nil), defaultSkills...)},
				{Name: "Category 2", Skills: append([]string(nil), defaultSkills...)},
			},
		}

	case SectionEducation:
		return EducationContent{
			Schools: []EducationItem{
				{Degree: "Degree Title", Type: "University degree", Institution: "University Name", Period: "2018 - 2022"},
				{Degree: "Previous Degree", Type: "High-School Diploma", Institution: "School Name", Period: "2014 - 2018"},
			},
		}

	case SectionInterests:
		return InterestsContent{
			Interests: []string{"Interest 1", "Interest 2", "Interest 3", "Interest 4"},
		}

	case SectionApps:
		return AppsContent{
			Apps: []AppItem{
				{Name: "App 1", Color: "#3b82f6", Icon: "📱"},
				{Name: "App 2", Color: "#8b5cf6", Icon: "🖥️"},
				{Name: "App 3", Color: "#6366f1", Icon: "🎮"},
			},
		}

	case SectionCustom:
		return CustomContent{Text: "Edit this custom section with your own content."}

	default:
		return RawContent{Type: t, Raw: []byte("{}")}
	}
}

// DefaultDocument returns the built-in CV shown on first start. newID
// allocates section IDs.
func DefaultDocument(newID func() string) Document {
	return Document{
		Title:    "Standard version",
		Subtitle: "cv-standard",
		Theme:    ThemeLight,
		Sections: []Section{
			{
				ID:    newID(),
				Type:  SectionProfile,
				Title: "Profile",
				Order: 0,
				Content: ProfileContent{
					Name:         "Mathis Garcia",
					Tagline:      "29 years old, French",
					Email:        "hello@mathisgarcia.com",
					Website:      "https://mathisgarcia.com",
					WebsiteLabel: "mathisgarcia.com",
					ProfileImage: DefaultProfileImage,
					Apps: []AppItem{
						{Name: "App 1", Color: "#3b82f6"},
						{Name: "App 2", Color: "#8b5cf6"},
						{Name: "App 3", Color: "#6366f1"},
					},
					Interests: []string{"Coding", "Running", "Film-making", "Art"},
				},
			},
			{
				ID:    newID(),
				Type:  SectionExperience,
				Title: "Experience",
				Order: 1,
				Content: ExperienceContent{
					Years: "10+ years",
					Jobs: []JobItem{
						{
							Company:        "Adobe",
							Title:          "UX/UI Designer",
							Period:         "2022 - now",
							Current:        true,
							LogoBackground: "#ef4444",
							Responsibilities: []string{
								"Growth: Acquisition funnel optimization",
								"Design System: created component library",
								"Web design: Redesign and optimization of adobe.com pages",
								"Tools: Figma, Jira, Teams, UserTesting, ContentSquare",
							},
						},
						{
							Company:        "Actio",
							Title:          "Full-stack Designer",
							Period:         "2020 - 2022",
							LogoBackground: "#f97316",
							Responsibilities: []string{
								"Re-branding: New logo of the company, Graphic Design",
								"Product design: UI prototyping, Motion design, Design system",
								"New website of the company: actio.com",
								"Tools: Figma, Adobe CC Suite, Slack, Asana",
							},
						},
					},
				},
			},
			{
				ID:    newID(),
				Type:  SectionExperience,
				Title: "Previous Experience",
				Order: 2,
				Content: ExperienceContent{
					Jobs: []JobItem{
						{
							Company:        "Tisma",
							Title:          "Freelance Designer",
							Period:         "2018 - 2020",
							LogoBackground: "#ef4444",
							Responsibilities: []string{
								"Multi-tasking: UX Design, Product Design, Graphic Design",
								"B2B Products: Websites, Mobile apps",
								"Tools: Figma, Adobe Illustrator, Wordpress",
								"Motion design: Logo animations and Advertising",
							},
						},
						{
							Company:        "Qucit",
							Title:          "Graphic Designer",
							Period:         "2017 - 2018",
							LogoBackground: "#6366f1",
							Responsibilities: []string{
								"New website of the company: qucit.com",
								"New Logo design and Re-branding",
								"UX/UI for a B2B Dashboard with data analysis",
								"Creation of visuals for Social Media communication",
							},
						},
					},
				},
			},
			{
				ID:    newID(),
				Type:  SectionSkills,
				Title: "Skills",
				Order: 3,
				Content: SkillsContent{
					Categories: []SkillCategory{
						{Name: "Design tools", Skills: []string{"Figma", "Illustrator", "Photoshop", "Sketch"}},
						{Name: "Video editing", Skills: []string{"Premiere Pro", "After Effects"}},
						{Name: "Languages", Skills: []string{"French", "English", "Spanish", "German"}},
						{Name: "Coding", Skills: []string{"HTML", "CSS", "JavaScript", "React", "WordPress"}},
					},
				},
			},
			{
				ID:    newID(),
				Type:  SectionEducation,
				Title: "Education",
				Order: 4,
				Content: EducationContent{
					Schools: []EducationItem{
						{Degree: "Web & Design", Type: "University degree", Institution: "amU", Period: "2015 - 2017"},
						{Degree: "Computer Science", Type: "High-School Diploma (Bac S)", Period: "2013 - 2015"},
					},
				},
			},
		},
	}
}
