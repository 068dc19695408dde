// Package content supplies the portfolio text the live view decorates the
// scene with. The scene itself does not depend on it.
package content

type About struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	Description     string `json:"description,omitempty"`
	Greeting        string `json:"greeting,omitempty"`
	HeroDescription string `json:"hero_description,omitempty"`
	ProfileImage    string `json:"profile_image,omitempty"`
	ResumeURL       string `json:"resume_url,omitempty"`
}

type Skill struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Percentage  int    `json:"percentage"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type Project struct {
	ID           int64    `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category"`
	Image        string   `json:"image,omitempty"`
	DemoURL      string   `json:"demo_url,omitempty"`
	GithubURL    string   `json:"github_url,omitempty"`
	DownloadURL  string   `json:"download_url,omitempty"`
	StoreURL     string   `json:"store_url,omitempty"`
	Featured     bool     `json:"is_featured"`
	Year         int      `json:"year,omitempty"`
	Status       string   `json:"status,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

type Experience struct {
	ID           int64    `json:"id,omitempty"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Current      bool     `json:"is_current"`
	Description  string   `json:"description,omitempty"`
	Type         string   `json:"type,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

type Contact struct {
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Location    string `json:"location,omitempty"`
	LinkedinURL string `json:"linkedin_url,omitempty"`
	GithubURL   string `json:"github_url,omitempty"`
	TwitterURL  string `json:"twitter_url,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
}

// Bundle is the whole content payload. Skills and projects are keyed by
// category, experience by type.
type Bundle struct {
	About      About                   `json:"about"`
	Skills     map[string][]Skill      `json:"skills"`
	Projects   map[string][]Project    `json:"projects"`
	Experience map[string][]Experience `json:"experience"`
	Contact    Contact                 `json:"contact"`
}

// normalize replaces nil sections with empty ones.
func (b *Bundle) normalize() *Bundle {
	if b.Skills == nil {
		b.Skills = map[string][]Skill{}
	}
	if b.Projects == nil {
		b.Projects = map[string][]Project{}
	}
	if b.Experience == nil {
		b.Experience = map[string][]Experience{}
	}
	return b
}

// Empty reports a bundle with no skills, projects or experience.
func (b *Bundle) Empty() bool {
	return len(b.Skills) == 0 && len(b.Projects) == 0 && len(b.Experience) == 0
}
