package config

// ColorScheme holds the hex colors the CLI renders with. Any field left
// empty in the config file falls back to the default scheme.
type ColorScheme struct {
	Accent    string `yaml:"accent"`
	Title     string `yaml:"title"`
	Subtle    string `yaml:"subtle"`
	Normal    string `yaml:"normal"`
	ErrorFg   string `yaml:"error_fg"`
	WarningFg string `yaml:"warning_fg"`
	SuccessFg string `yaml:"success_fg"`

	// Stage status colors for the pipeline tree view
	StageDone       string `yaml:"stage_done"`
	StageInProgress string `yaml:"stage_in_progress"`
	StageSkipped    string `yaml:"stage_skipped"`
}

func (c *ColorScheme) applyDefaults() {
	def := DefaultColorScheme()
	if c.Accent == "" {
		c.Accent = def.Accent
	}
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.Subtle == "" {
		c.Subtle = def.Subtle
	}
	if c.Normal == "" {
		c.Normal = def.Normal
	}
	if c.ErrorFg == "" {
		c.ErrorFg = def.ErrorFg
	}
	if c.WarningFg == "" {
		c.WarningFg = def.WarningFg
	}
	if c.SuccessFg == "" {
		c.SuccessFg = def.SuccessFg
	}
	if c.StageDone == "" {
		c.StageDone = def.StageDone
	}
	if c.StageInProgress == "" {
		c.StageInProgress = def.StageInProgress
	}
	if c.StageSkipped == "" {
		c.StageSkipped = def.StageSkipped
	}
}

// DefaultColorScheme mirrors the web client's palette.
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Accent:          "#2563eb",
		Title:           "#0f172a",
		Subtle:          "#94a3b8",
		Normal:          "#334155",
		ErrorFg:         "#dc2626",
		WarningFg:       "#d97706",
		SuccessFg:       "#16a34a",
		StageDone:       "#22c55e",
		StageInProgress: "#2563eb",
		StageSkipped:    "#94a3b8",
	}
}
