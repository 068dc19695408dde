package content

// Fallback is the static bundle used when no source answers.
func Fallback() *Bundle {
	return (&Bundle{
		About: About{
			Title:           "Game Developer & 3D Artist",
			Subtitle:        "Unity Developer | VR/AR Specialist | 3D Modeling Expert",
			Description:     "Passionate game developer with expertise in Unity, VR/AR experiences, and 3D modeling.",
			Greeting:        "Hello, I'm",
			HeroDescription: "Crafting immersive digital experiences through innovative game development.",
		},
		Skills: map[string][]Skill{
			"unity": {
				{Name: "Unity 3D", Percentage: 95, Description: "Advanced Unity development"},
				{Name: "C# Programming", Percentage: 90, Description: "Expert C# programming"},
			},
			"vr": {
				{Name: "Oculus Development", Percentage: 92, Description: "VR development"},
			},
			"modeling": {
				{Name: "Blender", Percentage: 90, Description: "3D modeling and animation"},
			},
		},
	}).normalize()
}
