package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	ProjectsDir    string
	Port           string
	WorkerCount    int
	ReloadInterval int
	StatusDelay    int
	StopTimeout    int
	APIAccessKey   string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
