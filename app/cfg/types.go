package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	SourcesDir      string
	SubscribersFile string
	Backfill        bool
	BackfillPages   int

	// SMS gateway configuration
	TextitID       string
	TextitPassword string
	TextitURL      string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
