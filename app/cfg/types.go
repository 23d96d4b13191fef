package cfg

type Cfg struct {
	// HTTP configuration
	Port          string
	BaseUrl       string
	APIAccessKey  string
	MaxUploadSize int64
	DownloadName  string

	// Tagging configuration
	RulesFile string

	// One-shot mode
	Input  string
	Output string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

// OneShot reports whether the process should tag a single file and exit.
func (c *Cfg) OneShot() bool {
	return c.Input != ""
}
