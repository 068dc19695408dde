package content

// Sample is a fuller demo bundle for seeding a fresh database.
func Sample() *Bundle {
	b := Fallback()
	b.Skills["technical"] = []Skill{
		{Name: "HLSL/Shaders", Percentage: 85, Icon: "shader"},
		{Name: "Git Version Control", Percentage: 88, Icon: "git"},
		{Name: "Performance Profiling", Percentage: 85, Icon: "profiling"},
	}
	b.Projects = map[string][]Project{
		"unity": {
			{
				Title:        "Epic Adventure RPG",
				Description:  "Open-world RPG with dynamic combat and procedural quests.",
				Featured:     true,
				Year:         2024,
				Technologies: []string{"Unity", "C#", "HLSL"},
				DemoURL:      "#",
				GithubURL:    "https://github.com/example/epic-rpg",
			},
			{
				Title:        "Puzzle Platformer",
				Description:  "Physics-driven puzzle platformer with time manipulation.",
				Year:         2023,
				Technologies: []string{"Unity", "C#"},
				StoreURL:     "https://store.example.com/puzzle",
			},
		},
		"vr": {
			{
				Title:        "Virtual Museum Tour",
				Description:  "Guided VR walkthrough of historical exhibits.",
				Featured:     true,
				Year:         2023,
				Technologies: []string{"Unity", "Oculus SDK"},
				DemoURL:      "https://demo.example.com/museum",
			},
		},
		"modeling": {
			{
				Title:        "Sci-Fi Character Pack",
				Description:  "Rigged and textured character models.",
				Year:         2022,
				Technologies: []string{"Blender", "Substance Painter"},
				DownloadURL:  "https://assets.example.com/scifi",
			},
		},
	}
	b.Experience = map[string][]Experience{
		"work": {
			{
				Title:        "Senior Game Developer",
				Company:      "Innovative Game Studios",
				Location:     "Remote",
				StartDate:    "2022-01-01",
				Current:      true,
				Description:  "Leading development of Unity-based games with a focus on VR/AR.",
				Achievements: []string{"Led development team of 8 developers", "Improved game performance by 40%"},
				Technologies: []string{"Unity", "C#", "OpenXR"},
			},
		},
	}
	b.Contact = Contact{Email: "hello@example.com", Location: "Remote", GithubURL: "https://github.com/example"}
	return b
}
