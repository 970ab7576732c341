package config

// SourceConfig describes one scraped announcement source.
type SourceConfig struct {
	Name     string         // Derived from filename (without .yml extension)
	Source   SourceInfo     `yaml:"source"`
	Settings SourceSettings `yaml:"settings"`
}

// SourceInfo locates the announcement listing.
type SourceInfo struct {
	URL       string `yaml:"url"`       // listing page URL
	PageURL   string `yaml:"page_url"`  // printf pattern with %d for backfilling older pages
	Container string `yaml:"container"` // selector of the element holding the posts
	Timezone  string `yaml:"timezone"`  // the site's local timezone
}

// SourceSettings contains scrape behavior settings.
type SourceSettings struct {
	Enabled    bool `yaml:"enabled"`
	PageSize   int  `yaml:"page_size"`   // posts shown per listing page
	FetchDelay int  `yaml:"fetch_delay"` // seconds between detail-page fetches
}
