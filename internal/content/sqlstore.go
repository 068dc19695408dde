package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

// SQLStore serves the bundle from a local SQLite database.
type SQLStore struct {
	db     *sql.DB
	dbPath string
}

// OpenSQLStore opens (creating if needed) the database at path and applies
// the schema.
func OpenSQLStore(ctx context.Context, path string) (*SQLStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &SQLStore{db: db, dbPath: path}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) Path() string { return s.dbPath }

// Migrate creates the schema. It is safe to run repeatedly.
func (s *SQLStore) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS about (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		subtitle TEXT,
		description TEXT,
		greeting TEXT,
		hero_description TEXT,
		profile_image TEXT,
		resume_url TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS skills (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		percentage INTEGER DEFAULT 0,
		description TEXT,
		icon TEXT,
		order_index INTEGER DEFAULT 0,
		is_active BOOLEAN DEFAULT 1
	);
	CREATE INDEX IF NOT EXISTS idx_skills_category ON skills(category);

	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		category TEXT NOT NULL,
		image TEXT,
		demo_url TEXT,
		github_url TEXT,
		download_url TEXT,
		store_url TEXT,
		is_featured BOOLEAN DEFAULT 0,
		year INTEGER,
		status TEXT DEFAULT 'completed',
		order_index INTEGER DEFAULT 0,
		is_active BOOLEAN DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS project_technologies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER REFERENCES projects (id) ON DELETE CASCADE,
		technology TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS project_tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER REFERENCES projects (id) ON DELETE CASCADE,
		tag TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS experience (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT,
		start_date DATE,
		end_date DATE,
		is_current BOOLEAN DEFAULT 0,
		description TEXT,
		type TEXT DEFAULT 'work',
		order_index INTEGER DEFAULT 0,
		is_active BOOLEAN DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS experience_achievements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		experience_id INTEGER REFERENCES experience (id) ON DELETE CASCADE,
		achievement TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS experience_technologies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		experience_id INTEGER REFERENCES experience (id) ON DELETE CASCADE,
		technology TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS contact_info (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT,
		phone TEXT,
		location TEXT,
		linkedin_url TEXT,
		github_url TEXT,
		twitter_url TEXT,
		website_url TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Seed replaces every table's rows with the contents of b.
func (s *SQLStore) Seed(ctx context.Context, b *Bundle) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{
		"project_technologies", "project_tags", "experience_achievements", "experience_technologies",
		"projects", "experience", "skills", "about", "contact_info",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	a := b.About
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO about (title, subtitle, description, greeting, hero_description, profile_image, resume_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Title, a.Subtitle, a.Description, a.Greeting, a.HeroDescription, a.ProfileImage, a.ResumeURL); err != nil {
		return fmt.Errorf("insert about: %w", err)
	}

	c := b.Contact
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO contact_info (email, phone, location, linkedin_url, github_url, twitter_url, website_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Email, c.Phone, c.Location, c.LinkedinURL, c.GithubURL, c.TwitterURL, c.WebsiteURL); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}

	for category, skills := range b.Skills {
		for i, sk := range skills {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO skills (name, category, percentage, description, icon, order_index) VALUES (?, ?, ?, ?, ?, ?)`,
				sk.Name, category, sk.Percentage, sk.Description, sk.Icon, i); err != nil {
				return fmt.Errorf("insert skill %q: %w", sk.Name, err)
			}
		}
	}

	for category, projects := range b.Projects {
		for i, p := range projects {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO projects (title, description, category, image, demo_url, github_url, download_url,
				 store_url, is_featured, year, status, order_index) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				p.Title, p.Description, category, p.Image, p.DemoURL, p.GithubURL, p.DownloadURL,
				p.StoreURL, p.Featured, p.Year, statusOr(p.Status, "completed"), i)
			if err != nil {
				return fmt.Errorf("insert project %q: %w", p.Title, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			if err := insertStrings(ctx, tx, "project_technologies", "project_id", "technology", id, p.Technologies); err != nil {
				return err
			}
			if err := insertStrings(ctx, tx, "project_tags", "project_id", "tag", id, p.Tags); err != nil {
				return err
			}
		}
	}

	for typ, entries := range b.Experience {
		for i, e := range entries {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO experience (title, company, location, start_date, end_date, is_current, description,
				 type, order_index) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				e.Title, e.Company, e.Location, e.StartDate, e.EndDate, e.Current, e.Description, typ, i)
			if err != nil {
				return fmt.Errorf("insert experience %q: %w", e.Title, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			if err := insertStrings(ctx, tx, "experience_achievements", "experience_id", "achievement", id, e.Achievements); err != nil {
				return err
			}
			if err := insertStrings(ctx, tx, "experience_technologies", "experience_id", "technology", id, e.Technologies); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func insertStrings(ctx context.Context, tx *sql.Tx, table, fk, col string, id int64, values []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?)", table, fk, col)
	for _, v := range values {
		if _, err := tx.ExecContext(ctx, query, id, v); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

func statusOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Fetch loads every section concurrently.
func (s *SQLStore) Fetch(ctx context.Context) (*Bundle, error) {
	b := &Bundle{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.loadAbout(ctx, &b.About) })
	g.Go(func() error { return s.loadContact(ctx, &b.Contact) })
	g.Go(func() (err error) {
		b.Skills, err = s.loadSkills(ctx)
		return err
	})
	g.Go(func() (err error) {
		b.Projects, err = s.loadProjects(ctx)
		return err
	})
	g.Go(func() (err error) {
		b.Experience, err = s.loadExperience(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b.normalize(), nil
}

func (s *SQLStore) loadAbout(ctx context.Context, a *About) error {
	err := s.db.QueryRowContext(ctx, `
		SELECT title, COALESCE(subtitle, ''), COALESCE(description, ''), COALESCE(greeting, ''),
		       COALESCE(hero_description, ''), COALESCE(profile_image, ''), COALESCE(resume_url, '')
		FROM about ORDER BY id DESC LIMIT 1`).
		Scan(&a.Title, &a.Subtitle, &a.Description, &a.Greeting, &a.HeroDescription, &a.ProfileImage, &a.ResumeURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load about: %w", err)
	}
	return nil
}

func (s *SQLStore) loadContact(ctx context.Context, c *Contact) error {
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(email, ''), COALESCE(phone, ''), COALESCE(location, ''), COALESCE(linkedin_url, ''),
		       COALESCE(github_url, ''), COALESCE(twitter_url, ''), COALESCE(website_url, '')
		FROM contact_info ORDER BY id DESC LIMIT 1`).
		Scan(&c.Email, &c.Phone, &c.Location, &c.LinkedinURL, &c.GithubURL, &c.TwitterURL, &c.WebsiteURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load contact: %w", err)
	}
	return nil
}

func (s *SQLStore) loadSkills(ctx context.Context) (map[string][]Skill, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, percentage, COALESCE(description, ''), COALESCE(icon, '')
		FROM skills WHERE is_active = 1
		ORDER BY category, order_index, name`)
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	defer rows.Close()

	out := map[string][]Skill{}
	for rows.Next() {
		var sk Skill
		var category string
		if err := rows.Scan(&sk.ID, &sk.Name, &category, &sk.Percentage, &sk.Description, &sk.Icon); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		out[category] = append(out[category], sk)
	}
	return out, rows.Err()
}

func (s *SQLStore) loadProjects(ctx context.Context) (map[string][]Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, COALESCE(description, ''), category, COALESCE(image, ''), COALESCE(demo_url, ''),
		       COALESCE(github_url, ''), COALESCE(download_url, ''), COALESCE(store_url, ''),
		       is_featured, COALESCE(year, 0), COALESCE(status, '')
		FROM projects WHERE is_active = 1
		ORDER BY is_featured DESC, order_index, year DESC`)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Image, &p.DemoURL,
			&p.GithubURL, &p.DownloadURL, &p.StoreURL, &p.Featured, &p.Year, &p.Status); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	techs, err := s.loadStrings(ctx, "SELECT project_id, technology FROM project_technologies ORDER BY id")
	if err != nil {
		return nil, err
	}
	tags, err := s.loadStrings(ctx, "SELECT project_id, tag FROM project_tags ORDER BY id")
	if err != nil {
		return nil, err
	}

	out := map[string][]Project{}
	for _, p := range projects {
		p.Technologies, p.Tags = techs[p.ID], tags[p.ID]
		out[p.Category] = append(out[p.Category], p)
	}
	return out, nil
}

func (s *SQLStore) loadExperience(ctx context.Context) (map[string][]Experience, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, company, COALESCE(location, ''), COALESCE(start_date, ''), COALESCE(end_date, ''),
		       is_current, COALESCE(description, ''), COALESCE(type, 'work')
		FROM experience WHERE is_active = 1
		ORDER BY order_index, start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("load experience: %w", err)
	}
	var entries []Experience
	for rows.Next() {
		var e Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.StartDate, &e.EndDate,
			&e.Current, &e.Description, &e.Type); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	achievements, err := s.loadStrings(ctx, "SELECT experience_id, achievement FROM experience_achievements ORDER BY id")
	if err != nil {
		return nil, err
	}
	techs, err := s.loadStrings(ctx, "SELECT experience_id, technology FROM experience_technologies ORDER BY id")
	if err != nil {
		return nil, err
	}

	out := map[string][]Experience{}
	for _, e := range entries {
		e.Achievements, e.Technologies = achievements[e.ID], techs[e.ID]
		out[e.Type] = append(out[e.Type], e)
	}
	return out, nil
}

// loadStrings groups a two-column (id, value) query by id.
func (s *SQLStore) loadStrings(ctx context.Context, query string) (map[int64][]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64][]string{}
	for rows.Next() {
		var id int64
		var v string
		if err := rows.Scan(&id, &v); err != nil {
			return nil, err
		}
		out[id] = append(out[id], v)
	}
	return out, rows.Err()
}
